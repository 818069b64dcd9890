package service

import "DomainFlip/internal/domain/models"

// Valuator appraises a candidate domain name. Implementations must be
// deterministic: the same domain string always yields the same evaluation.
type Valuator interface {
	Evaluate(domain string) models.DomainEvaluation
}
