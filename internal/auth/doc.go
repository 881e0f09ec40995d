// Package auth authenticates users against the User Store and issues JWTs.
//
// Passwords are stored as argon2id hashes. Hashes written by older releases
// are unsalted MD5 hex digests; they are still accepted and replaced by an
// argon2id hash on the first successful login.
//
// Example usage:
//
//	signer, err := auth.NewSigner(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiry)
//	service := auth.NewService(namespace.New(db), user.New(db), signer)
//
//	res, err := service.Login(ctx, "alice", "secret123", "default")
//
//	app.Get("/v1/auth/profile", auth.RequireToken(service), profileHandler)
package auth
