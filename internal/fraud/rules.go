package fraud

import (
	"fmt"
	"time"

	"ninhub/internal/linkage/models"
)

// Rules are the per-domain linkage limits.
type Rules struct {
	// Cap is the maximum number of linkages one NIN may hold in the domain.
	Cap int
	// VelocityThreshold is the number of linkages created within
	// VelocityWindow that raises a VELOCITY alert.
	VelocityThreshold int
	VelocityWindow    time.Duration
}

// DefaultRules returns the standing rule set: two SIMs and three bank
// accounts per NIN, with velocity judged over one hour.
func DefaultRules() map[models.Domain]Rules {
	return map[models.Domain]Rules{
		models.DomainSIM:  {Cap: 2, VelocityThreshold: 1, VelocityWindow: time.Hour},
		models.DomainBank: {Cap: 3, VelocityThreshold: 2, VelocityWindow: time.Hour},
	}
}

func (r Rules) validate(d models.Domain) error {
	if r.Cap < 1 {
		return fmt.Errorf("%s cap must be positive", d)
	}
	if r.VelocityThreshold < 1 {
		return fmt.Errorf("%s velocity threshold must be positive", d)
	}
	if r.VelocityWindow <= 0 {
		return fmt.Errorf("%s velocity window must be positive", d)
	}
	return nil
}
