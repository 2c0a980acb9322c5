package portfolio

import "github.com/wealthlens/stockreport/internal/domain"

// Build associates an investor identity with its ordered collection of
// normalized holdings. Pure composition, no computation.
//
// The identity triple is generated by the caller; it only needs to be unique
// enough to disambiguate holdings if several investors ever coexist in one
// store. The current pipeline runs exactly one investor per run.
func Build(investorID, name, phoneNumber string, holdings []domain.Holding) *domain.Investor {
	return &domain.Investor{
		InvestorID:  investorID,
		Name:        name,
		PhoneNumber: phoneNumber,
		Holdings:    holdings,
	}
}
