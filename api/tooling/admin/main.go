// This program performs administrative tasks for the referral service.
package main

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/mail"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/app/sdk/auth"
	"github.com/jcpaschoal/autonet/business/domain/tenantbus"
	"github.com/jcpaschoal/autonet/business/domain/tenantbus/stores/tenantdb"
	"github.com/jcpaschoal/autonet/business/domain/userbus"
	"github.com/jcpaschoal/autonet/business/domain/userbus/stores/userdb"
	"github.com/jcpaschoal/autonet/business/sdk/migrate"
	"github.com/jcpaschoal/autonet/business/sdk/sqldb"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
	"github.com/jcpaschoal/autonet/business/types/name"
	"github.com/jcpaschoal/autonet/business/types/password"
	"github.com/jcpaschoal/autonet/business/types/phone"
	"github.com/jcpaschoal/autonet/business/types/role"
	"github.com/jcpaschoal/autonet/business/types/slug"
	"github.com/jcpaschoal/autonet/business/types/tenantstatus"
	"github.com/jcpaschoal/autonet/foundation/keystore"
	"github.com/jcpaschoal/autonet/foundation/logger"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the settings the admin commands need.
type Config struct {
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Name         string `envconfig:"DB_NAME" default:"autonet"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
	Auth struct {
		KeysFolder string        `envconfig:"AUTH_KEYS_FOLDER" default:"zarf/keys"`
		ActiveKID  string        `envconfig:"AUTH_ACTIVE_KID" default:"54bb2165-71e1-41a6-af3e-7da4a0e1e2c1"`
		Issuer     string        `envconfig:"AUTH_ISSUER" default:"autonet"`
		TokenTTL   time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"8h"`
	}
}

func main() {
	log := logger.New(os.Stdout, logger.LevelInfo, "ADMIN", func(context.Context) string { return "" })
	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "admin", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: migrate, gen-key, create-tenant, tenant-status, create-user, gen-token")
		return nil
	}

	if os.Args[1] == "gen-key" {
		return runGenKey(cfg, os.Args[2:])
	}

	db, err := sqldb.Open(sqldb.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Host:         cfg.DB.Host,
		Name:         cfg.DB.Name,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		DisableTLS:   cfg.DB.DisableTLS,
	})
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer db.Close()

	tenantBus := tenantbus.NewCore(log, tenantdb.NewStore(log, db))
	userBus := userbus.NewCore(log, userdb.NewStore(log, db))

	switch os.Args[1] {
	case "migrate":
		if err := migrate.Migrate(ctx, log, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		fmt.Println("migrations complete")
		return nil

	case "create-tenant":
		return runCreateTenant(ctx, tenantBus, os.Args[2:])

	case "tenant-status":
		return runTenantStatus(ctx, tenantBus, os.Args[2:])

	case "create-user":
		return runCreateUser(ctx, tenantBus, userBus, os.Args[2:])

	case "gen-token":
		return runGenToken(ctx, cfg, log, userBus, os.Args[2:])
	}

	return fmt.Errorf("unknown command: %s", os.Args[1])
}

func runCreateTenant(ctx context.Context, tb *tenantbus.Core, args []string) error {
	cmd := flag.NewFlagSet("create-tenant", flag.ExitOnError)
	nameStr := cmd.String("name", "", "Tenant display name (Required)")
	slugStr := cmd.String("slug", "", "Tenant slug, derived from the name when empty")
	cmd.Parse(args)

	if *nameStr == "" {
		cmd.PrintDefaults()
		return errors.New("missing required fields")
	}

	nme, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	var slg slug.Slug
	switch *slugStr {
	case "":
		slg, err = slug.FromName(*nameStr)
	default:
		slg, err = slug.Parse(*slugStr)
	}
	if err != nil {
		return fmt.Errorf("invalid slug: %w", err)
	}

	t, err := tb.Create(ctx, tenantbus.NewTenant{Slug: slg, Name: nme})
	if err != nil {
		return fmt.Errorf("create tenant: %w", err)
	}

	fmt.Printf("tenant created\nID:   %s\nSlug: %s\n", t.ID, t.Slug)
	return nil
}

func runTenantStatus(ctx context.Context, tb *tenantbus.Core, args []string) error {
	cmd := flag.NewFlagSet("tenant-status", flag.ExitOnError)
	slugStr := cmd.String("slug", "", "Tenant slug (Required)")
	statusStr := cmd.String("status", "", "ACTIVE, SUSPENDED or INACTIVE (Required)")
	cmd.Parse(args)

	t, err := queryTenant(ctx, tb, *slugStr)
	if err != nil {
		return err
	}

	status, err := tenantstatus.Parse(*statusStr)
	if err != nil {
		return fmt.Errorf("invalid status: %w", err)
	}

	switch status {
	case tenantstatus.Active:
		t, err = tb.Activate(ctx, t)
	case tenantstatus.Suspended:
		t, err = tb.Suspend(ctx, t)
	case tenantstatus.Inactive:
		t, err = tb.Deactivate(ctx, t)
	}
	if err != nil {
		return fmt.Errorf("change status: %w", err)
	}

	fmt.Printf("tenant %s is now %s\n", t.Slug, t.Status)
	return nil
}

func runCreateUser(ctx context.Context, tb *tenantbus.Core, ub *userbus.Core, args []string) error {
	cmd := flag.NewFlagSet("create-user", flag.ExitOnError)
	tenantStr := cmd.String("tenant", "", "Tenant slug (Required)")
	emailStr := cmd.String("email", "", "User email (Required)")
	passStr := cmd.String("password", "", "User password (Required)")
	nameStr := cmd.String("name", "", "User full name (Required)")
	roleStr := cmd.String("role", role.Staff.String(), "User role (ADMIN, MANAGER, STAFF)")
	cmd.Parse(args)

	if *emailStr == "" || *passStr == "" || *nameStr == "" {
		cmd.PrintDefaults()
		return errors.New("missing required fields")
	}

	t, err := queryTenant(ctx, tb, *tenantStr)
	if err != nil {
		return err
	}

	nme, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	addr, err := mail.ParseAddress(*emailStr)
	if err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}

	rle, err := role.Parse(*roleStr)
	if err != nil {
		return fmt.Errorf("invalid role: %w", err)
	}

	pass, err := password.Parse(*passStr)
	if err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	tc := tenancy.NewContext()
	if err := tc.SetTenant(t.ID); err != nil {
		return fmt.Errorf("tenant context: %w", err)
	}

	usr, err := ub.NewWithScope(tc).Create(ctx, userbus.NewUser{
		TenantID: t.ID,
		Name:     nme,
		Email:    *addr,
		Role:     rle,
		Phone:    phone.Null{},
		Password: pass,
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Printf("user created\nID:     %s\nTenant: %s\nEmail:  %s\nRole:   %s\n", usr.ID, t.Slug, usr.Email.Address, usr.Role)
	return nil
}

func runGenToken(ctx context.Context, cfg Config, log *logger.Logger, ub *userbus.Core, args []string) error {
	cmd := flag.NewFlagSet("gen-token", flag.ExitOnError)
	userStr := cmd.String("user-id", "", "User UUID (Required)")
	kid := cmd.String("kid", cfg.Auth.ActiveKID, "Key id used to sign the token")
	cmd.Parse(args)

	userID, err := uuid.Parse(*userStr)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	usr, err := ub.Bypass().QueryByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("query user: %w", err)
	}

	ks := keystore.New()
	if _, err := ks.LoadByFileSystem(os.DirFS(cfg.Auth.KeysFolder)); err != nil {
		return fmt.Errorf("loading keys: %w", err)
	}

	a := auth.New(auth.Config{
		Log:       log,
		UserBus:   ub,
		KeyLookup: ks,
		Issuer:    cfg.Auth.Issuer,
		TokenTTL:  cfg.Auth.TokenTTL,
	})

	token, err := a.GenerateToken(*kid, usr)
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}

	fmt.Printf("-----BEGIN TOKEN-----\n%s\n-----END TOKEN-----\n", token)
	return nil
}

func runGenKey(cfg Config, args []string) error {
	cmd := flag.NewFlagSet("gen-key", flag.ExitOnError)
	kid := cmd.String("kid", cfg.Auth.ActiveKID, "Key id, used as the file name")
	cmd.Parse(args)

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return fmt.Errorf("generating key: %w", err)
	}

	if err := os.MkdirAll(cfg.Auth.KeysFolder, 0o700); err != nil {
		return fmt.Errorf("creating keys folder: %w", err)
	}

	file := filepath.Join(cfg.Auth.KeysFolder, *kid+".pem")

	f, err := os.OpenFile(file, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("creating key file: %w", err)
	}
	defer f.Close()

	block := pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	}

	if err := pem.Encode(f, &block); err != nil {
		return fmt.Errorf("encoding private key: %w", err)
	}

	fmt.Printf("private key written to %s\n", file)
	return nil
}

func queryTenant(ctx context.Context, tb *tenantbus.Core, slugStr string) (tenantbus.Tenant, error) {
	slg, err := slug.Parse(slugStr)
	if err != nil {
		return tenantbus.Tenant{}, fmt.Errorf("invalid tenant slug: %w", err)
	}

	t, err := tb.QueryBySlug(ctx, slg)
	if err != nil {
		return tenantbus.Tenant{}, fmt.Errorf("query tenant: %w", err)
	}

	return t, nil
}
