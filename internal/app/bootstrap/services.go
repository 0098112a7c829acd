// internal/app/bootstrap/services.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	academicstore "github.com/ihsb/ihsbsite/internal/app/store/academics"
	adminstore "github.com/ihsb/ihsbsite/internal/app/store/admins"
	admissionstore "github.com/ihsb/ihsbsite/internal/app/store/admissions"
	alumnistore "github.com/ihsb/ihsbsite/internal/app/store/alumni"
	announcementstore "github.com/ihsb/ihsbsite/internal/app/store/announcements"
	eventstore "github.com/ihsb/ihsbsite/internal/app/store/events"
	newsstore "github.com/ihsb/ihsbsite/internal/app/store/news"
	notificationstore "github.com/ihsb/ihsbsite/internal/app/store/notifications"
	sportstore "github.com/ihsb/ihsbsite/internal/app/store/sports"
	"github.com/ihsb/ihsbsite/internal/app/system/auth"
	"github.com/ihsb/ihsbsite/internal/app/system/identity"
	"github.com/ihsb/ihsbsite/internal/app/system/mailer"
	"github.com/ihsb/ihsbsite/internal/app/system/mediahost"
	"github.com/ihsb/ihsbsite/internal/app/system/notify"
	"github.com/ihsb/ihsbsite/internal/app/system/ratelimit"
	"github.com/ihsb/ihsbsite/internal/app/system/textassist"
	"go.uber.org/zap"
)

// services bundles the stores and collaborators the feature handlers share.
type services struct {
	events        *eventstore.Store
	announcements *announcementstore.Store
	news          *newsstore.Store
	sports        *sportstore.Store
	academics     *academicstore.Store
	featured      *alumnistore.FeaturedStore
	stories       *alumnistore.StoryStore
	yearStats     *alumnistore.YearStatsStore
	admissions    *admissionstore.Store
	admins        *adminstore.Store

	notify    *notify.Recorder
	guard     *auth.Guard
	mail      *mailer.Mailer
	uploader  *mediahost.Uploader
	assistant *textassist.Assistant

	formLimiter   *ratelimit.Limiter
	assistLimiter *ratelimit.Limiter
	clientIP      func(*http.Request) string
}

func buildServices(ctx context.Context, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (*services, error) {
	if deps.Store == nil {
		return nil, errors.New("no document store connected")
	}
	ds := deps.Store

	s := &services{
		events:        eventstore.New(ds),
		announcements: announcementstore.New(ds),
		news:          newsstore.New(ds),
		sports:        sportstore.New(ds),
		academics:     academicstore.New(ds),
		featured:      alumnistore.NewFeatured(ds),
		stories:       alumnistore.NewStories(ds),
		admissions:    admissionstore.New(ds),
		admins:        adminstore.New(ds),
		notify:        notify.New(notificationstore.New(ds), logger),
		formLimiter:   ratelimit.PerMinute(appCfg.PublicFormPerMinute),
		assistLimiter: ratelimit.PerMinute(appCfg.AssistPerMinute),
	}
	s.yearStats = alumnistore.NewYearStats(ds, s.featured)
	deps.cleanup.add(s.formLimiter.Stop)
	deps.cleanup.add(s.assistLimiter.Stop)

	trusted, err := ratelimit.ParseTrustedProxies(appCfg.TrustedProxies)
	if err != nil {
		return nil, err
	}
	s.clientIP = ratelimit.ClientIP(trusted)

	// Key set refreshes stop at shutdown.
	keysCtx, stopKeys := context.WithCancel(context.Background())
	deps.cleanup.add(stopKeys)
	verifier, err := identity.NewJWTVerifier(keysCtx, identity.JWTConfig{
		Issuer:     appCfg.AuthIssuer,
		Audience:   appCfg.AuthAudience,
		JWKSURL:    appCfg.AuthJWKSURL,
		HMACSecret: appCfg.AuthHMACSecret,
	})
	if err != nil {
		return nil, fmt.Errorf("token verifier: %w", err)
	}
	s.guard = auth.NewGuard(verifier, identity.NewResolver(appCfg.SuperadminEmails, s.admins), logger)

	s.mail = mailer.New(mailer.Config{
		Host:               appCfg.MailSMTPHost,
		Port:               appCfg.MailSMTPPort,
		User:               appCfg.MailSMTPUser,
		Pass:               appCfg.MailSMTPPass,
		From:               appCfg.MailFrom,
		FromName:           appCfg.MailFromName,
		InsecureSkipVerify: appCfg.MailInsecureSkipVerify,
	}, logger)

	host, err := buildFileHost(ctx, appCfg)
	if err != nil {
		return nil, err
	}
	s.uploader = mediahost.NewUploader(host, appCfg.UploadMaxBytes)

	// Without a key the assistant answers every call with a not-configured error.
	var completer textassist.Completer
	if appCfg.GenAIAPIKey != "" {
		g, err := textassist.NewGemini(ctx, appCfg.GenAIAPIKey, appCfg.GenAIModel)
		if err != nil {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		completer = g
	} else {
		logger.Warn("genai_api_key not set; writing assistant disabled")
	}
	s.assistant = textassist.New(completer)

	logger.Info("services ready",
		zap.String("backend", deps.Backend),
		zap.String("storage", appCfg.StorageType),
		zap.Bool("mail_enabled", s.mail.Enabled()),
		zap.Bool("assist_enabled", completer != nil))
	return s, nil
}

func buildFileHost(ctx context.Context, appCfg AppConfig) (mediahost.Host, error) {
	switch appCfg.StorageType {
	case "s3":
		h, err := mediahost.NewS3(ctx, mediahost.S3Config{
			Region:    appCfg.StorageS3Region,
			Bucket:    appCfg.StorageS3Bucket,
			Prefix:    appCfg.StorageS3Prefix,
			PublicURL: appCfg.StoragePublicURL,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 file host: %w", err)
		}
		return h, nil
	default:
		h, err := mediahost.NewLocal(appCfg.StorageLocalPath, appCfg.StorageLocalURL)
		if err != nil {
			return nil, fmt.Errorf("local file host: %w", err)
		}
		return h, nil
	}
}
