package dynamo

// Attribute names used in keys and expressions.
const (
	fieldUserID       = "user_id"
	fieldEmail        = "email"
	fieldOwnerID      = "owner_id"
	fieldPasswordHash = "password_hash"
	fieldIsVerified   = "is_verified"
	fieldOTP          = "otp"
	fieldOTPCreatedAt = "otp_created_at"
	fieldUpdatedAt    = "updated_at"

	fieldKey       = "key"
	fieldValue     = "value"
	fieldExpiresAt = "expires_at"

	emailIndex = "email-index"

	// emailMarkerPrefix prefixes the partition key of the item that reserves an address.
	emailMarkerPrefix = "email#"
)
