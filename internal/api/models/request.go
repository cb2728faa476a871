package models

// SimulatePropertyQuery is the query string of POST /simulate/property.
type SimulatePropertyQuery struct {
	Seed *uint64 `form:"seed"`
}

// SimulatePortfolioQuery is the query string of POST /simulate/portfolio and
// POST /portfolio/simulate. Sims is range-checked by the handler against the
// configured maximum.
type SimulatePortfolioQuery struct {
	Sims    *int    `form:"sims"`
	Seed    *uint64 `form:"seed"`
	Workers int     `form:"workers" binding:"omitempty,min=0,max=64"`
}
