package controller

import (
	"net/http"

	"github.com/feedbackboard/feedbackboard/config"
	"github.com/feedbackboard/feedbackboard/database"
	"github.com/feedbackboard/feedbackboard/logger"
	"github.com/feedbackboard/feedbackboard/web/service"
	"github.com/feedbackboard/feedbackboard/web/session"

	"github.com/gin-gonic/gin"
)

// RegisterForm carries the registration request. The binding tags hold
// the declared field constraints; anything that fails them never
// reaches the services.
type RegisterForm struct {
	Username  string `form:"username" binding:"required,max=20"`
	Password  string `form:"password" binding:"required,min=8,max=40"`
	Email     string `form:"email" binding:"required,email,max=50"`
	FirstName string `form:"first_name" binding:"required,max=30"`
	LastName  string `form:"last_name" binding:"required,max=30"`
}

// LoginForm carries the login request.
type LoginForm struct {
	Username string `form:"username" binding:"required,max=20"`
	Password string `form:"password" binding:"required,min=8,max=40"`
}

// UserController handles registration, login, logout and profile
// routes.
type UserController struct {
	BaseController

	userService     service.UserService
	feedbackService service.FeedbackService
}

// NewUserController creates a UserController and registers its routes.
func NewUserController(g *gin.RouterGroup) *UserController {
	a := &UserController{}
	a.initRouter(g)
	return a
}

func (a *UserController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/register", a.showRegister)
	g.POST("/register", a.register)
	g.GET("/login", a.showLogin)
	g.POST("/login", a.login)
	g.GET("/logout", a.logout)

	users := g.Group("/users", a.checkLogin)
	users.GET("/:username", a.showUser)
	users.POST("/:username/delete", a.deleteUser)
}

// index redirects to the visitor's own page, or to registration.
func (a *UserController) index(c *gin.Context) {
	if username := session.GetLoginUser(c); username != "" {
		c.Redirect(http.StatusFound, "/users/"+username)
		return
	}
	c.Redirect(http.StatusFound, "/register")
}

func (a *UserController) showRegister(c *gin.Context) {
	if username := session.GetLoginUser(c); username != "" {
		c.Redirect(http.StatusFound, "/users/"+username)
		return
	}
	html(c, "register.html", "Register", nil)
}

// register creates the account, logs the new user in and sends them to
// their page. A username or email collision re-renders the form; it is
// a retryable form error, not a failure.
func (a *UserController) register(c *gin.Context) {
	if username := session.GetLoginUser(c); username != "" {
		c.Redirect(http.StatusFound, "/users/"+username)
		return
	}

	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		html(c, "register.html", "Register", gin.H{
			"errors": formErrors(err),
			"form":   form,
		})
		return
	}

	user, err := a.userService.Register(form.Username, form.Password, form.Email, form.FirstName, form.LastName)
	if err != nil {
		if database.IsDuplicate(err) {
			html(c, "register.html", "Register", gin.H{
				"errors": map[string]string{"Username": "Username or email taken. Please pick another."},
				"form":   form,
			})
			return
		}
		logger.Warning("register user err:", err)
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	session.SetMaxAge(c, config.GetSessionMaxAge()*60)
	if err := session.SetLoginUser(c, user.Username); err != nil {
		logger.Warning("unable to save session:", err)
	}
	session.AddFlash(c, "success", "Welcome! You are now registered!")

	logger.Infof("%s registered, IP: %s", user.Username, getRemoteIp(c))
	c.Redirect(http.StatusFound, "/users/"+user.Username)
}

func (a *UserController) showLogin(c *gin.Context) {
	if username := session.GetLoginUser(c); username != "" {
		c.Redirect(http.StatusFound, "/users/"+username)
		return
	}
	html(c, "login.html", "Login", nil)
}

// login verifies the credentials. A bad username and a bad password get
// the same message.
func (a *UserController) login(c *gin.Context) {
	if username := session.GetLoginUser(c); username != "" {
		c.Redirect(http.StatusFound, "/users/"+username)
		return
	}

	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		html(c, "login.html", "Login", gin.H{
			"errors": formErrors(err),
			"form":   form,
		})
		return
	}

	user := a.userService.CheckUser(form.Username, form.Password)
	if user == nil {
		logger.Warningf("failed login for %q, IP: %s", form.Username, getRemoteIp(c))
		html(c, "login.html", "Login", gin.H{
			"errors": map[string]string{"Username": "Invalid username or password."},
			"form":   form,
		})
		return
	}

	session.SetMaxAge(c, config.GetSessionMaxAge()*60)
	if err := session.SetLoginUser(c, user.Username); err != nil {
		logger.Warning("unable to save session:", err)
	}
	session.AddFlash(c, "success", "Welcome Back, "+user.Username+"!")

	logger.Infof("%s logged in, IP: %s", user.Username, getRemoteIp(c))
	c.Redirect(http.StatusFound, "/users/"+user.Username)
}

func (a *UserController) logout(c *gin.Context) {
	if username := session.GetLoginUser(c); username != "" {
		logger.Infof("%s logged out", username)
	}
	session.ClearSession(c)
	c.Redirect(http.StatusFound, "/")
}

// showUser renders the profile with its feedback. Only the owner may
// see it.
func (a *UserController) showUser(c *gin.Context) {
	username := c.Param("username")
	if session.GetLoginUser(c) != username {
		denyNotOwner(c)
		return
	}

	user, err := a.userService.GetUser(username)
	if err != nil {
		if database.IsNotFound(err) {
			c.String(http.StatusNotFound, "404 not found")
			return
		}
		logger.Warning("get user err:", err)
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	feedbacks, err := a.feedbackService.GetByUser(username)
	if err != nil {
		logger.Warning("list feedback err:", err)
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	html(c, "user.html", user.Username, gin.H{
		"user":      user,
		"feedbacks": feedbacks,
	})
}

// deleteUser removes the account with its feedback and ends the
// session.
func (a *UserController) deleteUser(c *gin.Context) {
	username := c.Param("username")
	if session.GetLoginUser(c) != username {
		denyNotOwner(c)
		return
	}

	if err := a.userService.DeleteUser(username); err != nil {
		if database.IsNotFound(err) {
			c.String(http.StatusNotFound, "404 not found")
			return
		}
		logger.Warning("delete user err:", err)
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	logger.Infof("%s deleted their account", username)
	session.ClearSession(c)
	c.Redirect(http.StatusFound, "/")
}
