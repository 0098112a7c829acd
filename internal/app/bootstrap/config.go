// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/ihsb/ihsbsite/internal/app/system/inputval"
	"github.com/ihsb/ihsbsite/internal/app/system/limits"
	"github.com/ihsb/ihsbsite/internal/app/system/normalize"
	"github.com/ihsb/ihsbsite/internal/app/system/ratelimit"
	"github.com/ihsb/ihsbsite/internal/app/system/textassist"
	"github.com/ihsb/ihsbsite/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Store backends.
const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// appConfigKeys defines the configuration keys for the site.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, storage_type, etc.
//   - Environment variables: IHSB_MONGO_URI, IHSB_STORAGE_TYPE, etc.
//   - Command-line flags: --mongo_uri, --storage_type, etc.
var appConfigKeys = []config.AppKey{
	{Name: "store_backend", Default: BackendMongo, Desc: "Document store: 'mongo' or 'memory' (memory loses data on restart)"},
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "ihsb", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size (default: 5)"},

	// Access
	{Name: "superadmin_emails", Default: "", Desc: "Comma-separated emails that are always superadmin"},
	{Name: "auth_issuer", Default: "", Desc: "Required token issuer (blank disables the check)"},
	{Name: "auth_audience", Default: "", Desc: "Required token audience (blank disables the check)"},
	{Name: "auth_jwks_url", Default: "", Desc: "JWKS URL of the identity provider's signing keys"},
	{Name: "auth_hmac_secret", Default: "", Desc: "HS256 token secret (development only)"},
	{Name: "cors_allowed_origins", Default: "http://localhost:3000", Desc: "Comma-separated origins allowed to call the API"},

	// File storage configuration
	{Name: "storage_type", Default: "local", Desc: "Storage backend: 'local' or 's3'"},
	{Name: "storage_local_path", Default: "./uploads", Desc: "Local storage path for uploaded files"},
	{Name: "storage_local_url", Default: "/files", Desc: "URL prefix for serving local files"},
	{Name: "storage_s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "storage_s3_prefix", Default: "uploads/", Desc: "S3 key prefix"},
	{Name: "storage_public_url", Default: "", Desc: "Public base URL for stored objects"},
	{Name: "upload_max_bytes", Default: limits.DefaultUploadBytes, Desc: "Largest accepted upload in bytes"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "localhost", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@ihsb.edu.bd", Desc: "From email address"},
	{Name: "mail_from_name", Default: "IHSB", Desc: "From display name"},
	{Name: "mail_insecure_skip_verify", Default: false, Desc: "Skip SMTP TLS certificate verification (local relays only)"},
	{Name: "admissions_email", Default: "", Desc: "Inbox alerted to new admission applications"},
	{Name: "contact_email", Default: "", Desc: "Inbox receiving contact form messages"},
	{Name: "admin_base_url", Default: "http://localhost:3000", Desc: "Admin UI origin for email links"},

	// Writing assistant
	{Name: "genai_api_key", Default: "", Desc: "Gemini API key (blank disables the writing assistant)"},
	{Name: "genai_model", Default: textassist.DefaultModel, Desc: "Gemini model name"},

	// Rate limits
	{Name: "assist_per_minute", Default: 10, Desc: "Writing assistant requests per admin per minute"},
	{Name: "public_form_per_minute", Default: 5, Desc: "Public form submissions per client per minute"},
	{Name: "trusted_proxies", Default: "", Desc: "Comma-separated proxy IPs or CIDRs whose forwarding headers are trusted"},

	// Timeouts
	{Name: "timeout_store", Default: "10s", Desc: "Database operation timeout"},
	{Name: "timeout_upstream", Default: "30s", Desc: "Timeout for identity, storage and AI calls"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges, with precedence
// flags > env (WAFFLE_* for core, IHSB_* for app) > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "IHSB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		StoreBackend:     strings.ToLower(strings.TrimSpace(appValues.String("store_backend"))),
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SuperadminEmails:   normalize.EmailList(appValues.String("superadmin_emails")),
		AuthIssuer:         appValues.String("auth_issuer"),
		AuthAudience:       appValues.String("auth_audience"),
		AuthJWKSURL:        appValues.String("auth_jwks_url"),
		AuthHMACSecret:     appValues.String("auth_hmac_secret"),
		CORSAllowedOrigins: splitList(appValues.String("cors_allowed_origins")),

		// File storage
		StorageType:      strings.ToLower(strings.TrimSpace(appValues.String("storage_type"))),
		StorageLocalPath: appValues.String("storage_local_path"),
		StorageLocalURL:  appValues.String("storage_local_url"),
		StorageS3Region:  appValues.String("storage_s3_region"),
		StorageS3Bucket:  appValues.String("storage_s3_bucket"),
		StorageS3Prefix:  appValues.String("storage_s3_prefix"),
		StoragePublicURL: appValues.String("storage_public_url"),
		UploadMaxBytes:   int64(appValues.Int("upload_max_bytes")),

		// Email/SMTP
		MailSMTPHost:           appValues.String("mail_smtp_host"),
		MailSMTPPort:           appValues.Int("mail_smtp_port"),
		MailSMTPUser:           appValues.String("mail_smtp_user"),
		MailSMTPPass:           appValues.String("mail_smtp_pass"),
		MailFrom:               appValues.String("mail_from"),
		MailFromName:           appValues.String("mail_from_name"),
		MailInsecureSkipVerify: appValues.Bool("mail_insecure_skip_verify"),
		AdmissionsEmail:        normalize.Email(appValues.String("admissions_email")),
		ContactEmail:           normalize.Email(appValues.String("contact_email")),
		AdminBaseURL:           appValues.String("admin_base_url"),

		GenAIAPIKey: appValues.String("genai_api_key"),
		GenAIModel:  appValues.String("genai_model"),

		AssistPerMinute:     appValues.Int("assist_per_minute"),
		PublicFormPerMinute: appValues.Int("public_form_per_minute"),
		TrustedProxies:      splitList(appValues.String("trusted_proxies")),

		TimeoutStore:    appValues.Duration("timeout_store", timeouts.DefaultStore),
		TimeoutUpstream: appValues.Duration("timeout_upstream", timeouts.DefaultUpstream),
	}

	if appCfg.UploadMaxBytes <= 0 {
		appCfg.UploadMaxBytes = limits.DefaultUploadBytes
	}
	if len(appCfg.SuperadminEmails) == 0 {
		logger.Warn("no superadmin_emails configured; only stored superadmin accounts can manage admins")
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	var errs []error

	switch appCfg.StoreBackend {
	case BackendMongo:
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			errs = append(errs, fmt.Errorf("invalid MongoDB URI: %w", err))
		}
		if strings.TrimSpace(appCfg.MongoDatabase) == "" {
			errs = append(errs, errors.New("mongo_database is required"))
		}
	case BackendMemory:
		logger.Warn("using the in-memory store; content is lost on restart")
	default:
		errs = append(errs, fmt.Errorf("store_backend must be %q or %q, got %q", BackendMongo, BackendMemory, appCfg.StoreBackend))
	}

	if appCfg.AuthJWKSURL == "" && appCfg.AuthHMACSecret == "" {
		errs = append(errs, errors.New("set auth_jwks_url or auth_hmac_secret so admin tokens can be verified"))
	}
	if appCfg.AuthHMACSecret != "" && len(appCfg.AuthHMACSecret) < 32 {
		errs = append(errs, errors.New("auth_hmac_secret must be at least 32 characters"))
	}

	switch appCfg.StorageType {
	case "local":
		if appCfg.StorageLocalPath == "" || appCfg.StorageLocalURL == "" {
			errs = append(errs, errors.New("local storage requires storage_local_path and storage_local_url"))
		}
	case "s3":
		if appCfg.StorageS3Bucket == "" || appCfg.StorageS3Region == "" {
			errs = append(errs, errors.New("s3 storage requires storage_s3_bucket and storage_s3_region"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage_type must be 'local' or 's3', got %q", appCfg.StorageType))
	}

	for _, e := range appCfg.SuperadminEmails {
		if !inputval.IsValidEmail(e) {
			errs = append(errs, fmt.Errorf("superadmin_emails: %q is not an email address", e))
		}
	}
	for key, e := range map[string]string{"admissions_email": appCfg.AdmissionsEmail, "contact_email": appCfg.ContactEmail} {
		if e != "" && !inputval.IsValidEmail(e) {
			errs = append(errs, fmt.Errorf("%s: %q is not an email address", key, e))
		}
	}
	for key, u := range map[string]string{
		"admin_base_url":     appCfg.AdminBaseURL,
		"storage_public_url": appCfg.StoragePublicURL,
		"auth_jwks_url":      appCfg.AuthJWKSURL,
	} {
		if u != "" && !inputval.IsValidHTTPURL(u) {
			errs = append(errs, fmt.Errorf("%s must be an http or https URL", key))
		}
	}

	if _, err := ratelimit.ParseTrustedProxies(appCfg.TrustedProxies); err != nil {
		errs = append(errs, err)
	}
	if appCfg.MailInsecureSkipVerify {
		logger.Warn("SMTP certificate verification is disabled", zap.String("host", appCfg.MailSMTPHost))
	}

	if appCfg.TimeoutStore <= 0 || appCfg.TimeoutUpstream <= 0 {
		errs = append(errs, errors.New("timeouts must be positive"))
	}
	if appCfg.TimeoutStore > 5*time.Minute {
		logger.Warn("timeout_store is unusually long", zap.Duration("timeout_store", appCfg.TimeoutStore))
	}

	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
