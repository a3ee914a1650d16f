package constants

var SiteURLMap = map[string]string{
	"site":  "http://%s",
	"admin": "http://%s/wp-admin",
	"mail":  "http://localhost:1080",
}
