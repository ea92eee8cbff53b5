package utils

import (
	"time"

	"github.com/mojocn/base64Captcha"
)

// Captcha state is kept in Redis (see captcha_store.go) so verification
// works behind a load balancer.
var captchaStore = NewRedisCaptchaStore(10 * time.Minute)

// GenerateCaptcha creates a captcha and returns (id, dataURI) for the client to display.
func GenerateCaptcha() (string, string, error) {
	// digit captcha: height 40, width 120, length 5
	driver := base64Captcha.NewDriverDigit(40, 120, 5, 0.7, 80)
	c := base64Captcha.NewCaptcha(driver, captchaStore)
	id, b64, _, err := c.Generate()
	return id, b64, err
}

// VerifyCaptcha verifies the provided answer; it consumes the captcha on success.
func VerifyCaptcha(id, answer string) bool {
	if id == "" || answer == "" {
		return false
	}
	return captchaStore.Verify(id, answer, true)
}
