// Command issuetoken mints a bearer token for local development. It signs with
// the same JWT_SIGNING_KEY and JWT_ISSUER the server reads.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	jwttoken "ninhub/internal/jwt_token"
	"ninhub/internal/platform/config"
	"ninhub/pkg/domain"
)

func main() {
	actorID := flag.String("actor", "", "actor id placed in the token")
	role := flag.String("role", string(domain.RoleSuperAdmin), "super_admin, ncra_admin, bank_officer or telecom_officer")
	ttl := flag.Duration("ttl", 8*time.Hour, "token lifetime")
	flag.Parse()

	if err := issue(*actorID, *role, *ttl); err != nil {
		fmt.Fprintln(os.Stderr, "issuetoken:", err)
		os.Exit(1)
	}
}

func issue(rawActor, rawRole string, ttl time.Duration) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	id, err := domain.ParseActorID(rawActor)
	if err != nil {
		return err
	}
	role, err := domain.ParseRole(rawRole)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive")
	}

	token, err := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer).
		GenerateAccessToken(domain.Actor{ID: id, Role: role}, ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
