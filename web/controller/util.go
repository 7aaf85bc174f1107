package controller

import (
	"net"
	"net/http"
	"strings"

	"github.com/feedbackboard/feedbackboard/config"
	"github.com/feedbackboard/feedbackboard/web/session"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// getRemoteIp extracts the real IP address from the request headers or
// remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// html renders a template with the flash messages and session identity
// added to the data.
func html(c *gin.Context, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = title
	data["cur_ver"] = config.GetVersion()
	data["flashes"] = session.TakeFlashes(c)
	data["login_user"] = session.GetLoginUser(c)
	c.HTML(http.StatusOK, name, data)
}

// formErrors maps binding failures to per-field messages for
// re-rendering a form. Unrecognized errors collapse into one generic
// message under the empty field name.
func formErrors(err error) map[string]string {
	out := make(map[string]string)
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out[""] = "Invalid form data."
		return out
	}
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			out[field] = "This field is required."
		case "email":
			out[field] = "Not a valid email address."
		case "max":
			out[field] = "Must be at most " + fe.Param() + " characters long."
		case "min":
			out[field] = "Must be at least " + fe.Param() + " characters long."
		default:
			out[field] = "Invalid value."
		}
	}
	return out
}
