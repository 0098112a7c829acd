// internal/app/system/limits/limits.go
package limits

// Request and payload size limits.
const (
	// MaxJSONBody bounds JSON request bodies for create/update endpoints.
	MaxJSONBody = 1 << 20 // 1 MB

	// DefaultUploadBytes is the upload cap when upload_max_bytes is unset.
	DefaultUploadBytes = 10 << 20 // 10 MB

	// MaxAssistInput is the longest text accepted by the improve endpoint,
	// in characters.
	MaxAssistInput = 20000

	// MaxAssistOutput is the longest improved text returned, in characters.
	MaxAssistOutput = 25000

	// MaxContactMessage bounds the contact form's message, in characters.
	MaxContactMessage = 5000
)
