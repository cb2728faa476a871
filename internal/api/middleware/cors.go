package middleware

import (
	"log"
	"net/http"
	"regexp"

	"realestate-sim/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// CORS allows the configured origins plus any origin matching
// AllowedOriginRegex (e.g. preview deployments).
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		allowed[o] = true
	}
	var re *regexp.Regexp
	if cfg.AllowedOriginRegex != "" {
		var err error
		re, err = regexp.Compile(cfg.AllowedOriginRegex)
		if err != nil {
			log.Printf("CORS: ignoring invalid allowed_origin_regex %q: %v", cfg.AllowedOriginRegex, err)
		}
	}

	c := cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return allowed["*"] || allowed[origin] || (re != nil && re.MatchString(origin))
		},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: cfg.AllowCredentials,
	})

	return func(ctx *gin.Context) {
		c.HandlerFunc(ctx.Writer, ctx.Request)
		if ctx.Request.Method == http.MethodOptions && ctx.GetHeader("Access-Control-Request-Method") != "" {
			// preflight already answered
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
