package mws

import (
	"crypto/hmac"
	"crypto/md5" //nolint:gosec // Content-MD5 is mandated by the MWS feed API
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"github.com/donaldgifford/amazon-mws/pkg/params"
)

const (
	signatureVersion = "2"
	signatureMethod  = "HmacSHA256"
)

// Sign computes an MWS Signature Version 2 over the request. host is the
// endpoint host without scheme and path is the section URI.
func Sign(secretKey, method, host, path string, values params.Values) string {
	if path == "" {
		path = "/"
	}
	toSign := strings.Join([]string{
		method,
		strings.ToLower(host),
		path,
		values.Encode(),
	}, "\n")

	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(toSign))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// ContentMD5 returns the base64 MD5 digest MWS expects in Content-MD5.
func ContentMD5(body []byte) string {
	sum := md5.Sum(body) //nolint:gosec // see import
	return base64.StdEncoding.EncodeToString(sum[:])
}
