// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables (IHSB_*), configuration
// files, or command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig
// covers ports, TLS, logging and request limits; everything here is specific
// to the school site.
type AppConfig struct {
	// Document store
	StoreBackend     string // "mongo" or "memory"
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Admin access
	SuperadminEmails []string // always superadmin, whatever the admins collection says

	// Bearer token verification. At least one of AuthJWKSURL and
	// AuthHMACSecret must be set.
	AuthIssuer     string
	AuthAudience   string
	AuthJWKSURL    string // provider signing keys as a JSON Web Key Set
	AuthHMACSecret string // HS256 secret, for local development and tests

	CORSAllowedOrigins []string

	// File storage
	StorageType      string // "local" or "s3"
	StorageLocalPath string // Local directory for uploads (e.g., "./uploads")
	StorageLocalURL  string // URL prefix the local directory is served under

	StorageS3Region  string
	StorageS3Bucket  string
	StorageS3Prefix  string
	StoragePublicURL string // public base URL for S3 objects (CDN or bucket website)
	UploadMaxBytes   int64

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string

	// MailInsecureSkipVerify disables SMTP certificate checks. Only for local
	// relays such as Mailpit with self-signed certificates.
	MailInsecureSkipVerify bool

	AdmissionsEmail string // receives new-application alerts
	ContactEmail    string // receives contact form messages
	AdminBaseURL    string // admin UI origin used in email links

	// Writing assistant
	GenAIAPIKey string
	GenAIModel  string

	// Rate limits, per minute
	AssistPerMinute     int // per admin
	PublicFormPerMinute int // per client IP

	// TrustedProxies lists proxy addresses or CIDR ranges whose
	// X-Forwarded-For and X-Real-IP headers are believed. Empty means the
	// peer address is the client.
	TrustedProxies []string

	// Transport timeouts
	TimeoutStore    time.Duration
	TimeoutUpstream time.Duration
}
