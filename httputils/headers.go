package httputils

const (
	AllowOriginHeader      = "Access-Control-Allow-Origin"
	AllowHeadersHeader     = "Access-Control-Allow-Headers"
	AllowMethodsHeader     = "Access-Control-Allow-Methods"
	AllowCredentialsHeader = "Access-Control-Allow-Credentials"
	ExposeHeadersHeader    = "Access-Control-Expose-Headers"
	MaxAgeHeader           = "Access-Control-Max-Age"

	//ContentTypeJSON json content type
	ContentTypeJSON = "application/json"
	//ContentTypeForm url encoded form content type
	ContentTypeForm = "application/x-www-form-urlencoded"
)
