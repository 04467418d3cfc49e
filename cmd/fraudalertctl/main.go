// Command fraudalertctl issues API tokens and development certificates.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dhxnujaK/Fraud-Alert-LK/pkg/auth"
	"github.com/dhxnujaK/Fraud-Alert-LK/pkg/tlsutil"
)

const usage = `usage:
  fraudalertctl token -subject NAME [-scopes fraud:analyze,fraud:read] [-ttl 24h]
  fraudalertctl keys  -out DIR
  fraudalertctl certs -out DIR [-hosts localhost,127.0.0.1]
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "token":
		err = runToken(os.Args[2:])
	case "keys":
		err = runKeys(os.Args[2:])
	case "certs":
		err = runCerts(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// runToken signs a token with JWT_SECRET or the RSA key in -key.
func runToken(args []string) error {
	fs := flag.NewFlagSet("token", flag.ExitOnError)
	subject := fs.String("subject", "", "client name")
	scopes := fs.String("scopes", auth.ScopeAnalyze+","+auth.ScopeRead, "comma separated scopes")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	keyFile := fs.String("key", "", "RSA private key PEM; JWT_SECRET is used when empty")
	issuer := fs.String("issuer", os.Getenv("JWT_ISSUER"), "token issuer")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *subject == "" {
		return fmt.Errorf("-subject is required")
	}

	cfg := auth.JWTConfig{
		Secret:     os.Getenv("JWT_SECRET"),
		Issuer:     *issuer,
		Expiration: *ttl,
	}
	if *keyFile != "" {
		pem, err := auth.LoadKeyFromFile(*keyFile)
		if err != nil {
			return err
		}
		cfg.PrivateKeyPEM = string(pem)
	}

	svc, err := auth.NewJWTService(cfg)
	if err != nil {
		return err
	}
	token, err := svc.GenerateToken(*subject, splitList(*scopes))
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func runKeys(args []string) error {
	fs := flag.NewFlagSet("keys", flag.ExitOnError)
	out := fs.String("out", ".", "output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	priv, pub, err := auth.GenerateKeyPair()
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out+"/jwt.key", priv, 0o600); err != nil {
		return err
	}
	if err := os.WriteFile(*out+"/jwt.pub", pub, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s/jwt.key and %s/jwt.pub\n", *out, *out)
	return nil
}

func runCerts(args []string) error {
	fs := flag.NewFlagSet("certs", flag.ExitOnError)
	out := fs.String("out", ".", "output directory")
	hosts := fs.String("hosts", "localhost,127.0.0.1", "comma separated DNS names and IPs")
	if err := fs.Parse(args); err != nil {
		return err
	}

	paths, err := tlsutil.GenerateSelfSignedCert(splitList(*hosts), *out)
	if err != nil {
		return err
	}
	fmt.Printf("GRPC_TLS_CERT_FILE=%s\nGRPC_TLS_KEY_FILE=%s\nCA=%s\n", paths.ServerCert, paths.ServerKey, paths.CA)
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
