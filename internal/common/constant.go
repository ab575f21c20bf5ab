package common

// AccessTokenHeaderName is the HTTP header used to carry the dialog access
// token on outbound requests.
const AccessTokenHeaderName = "X-Access-Token"

// MaxFileSize is the upload limit per file (100 MB).
const MaxFileSize = 100 * 1024 * 1024
