package controller

import (
	"net/http"
	"strconv"

	"github.com/feedbackboard/feedbackboard/database"
	"github.com/feedbackboard/feedbackboard/database/model"
	"github.com/feedbackboard/feedbackboard/logger"
	"github.com/feedbackboard/feedbackboard/web/service"
	"github.com/feedbackboard/feedbackboard/web/session"

	"github.com/gin-gonic/gin"
)

// FeedbackForm carries a new or edited feedback entry.
type FeedbackForm struct {
	Title   string `form:"title" binding:"required,max=100"`
	Content string `form:"content" binding:"required"`
}

// FeedbackController handles adding, editing and deleting feedback.
// All routes sit behind the login guard; ownership of existing entries
// is resolved from the stored row, never from anything the client
// sent.
type FeedbackController struct {
	BaseController

	feedbackService service.FeedbackService
}

// NewFeedbackController creates a FeedbackController and registers its
// routes.
func NewFeedbackController(g *gin.RouterGroup) *FeedbackController {
	a := &FeedbackController{}
	a.initRouter(g)
	return a
}

func (a *FeedbackController) initRouter(g *gin.RouterGroup) {
	users := g.Group("/users", a.checkLogin)
	users.GET("/:username/feedback/add", a.showAdd)
	users.POST("/:username/feedback/add", a.add)

	feedback := g.Group("/feedback", a.checkLogin)
	feedback.GET("/:id/update", a.showEdit)
	feedback.POST("/:id/update", a.edit)
	feedback.POST("/:id/delete", a.delete)
}

// loadOwned fetches the entry for the id path parameter and enforces
// ownership against the session identity. Returns nil after writing
// the response when the entry is missing or owned by someone else.
func (a *FeedbackController) loadOwned(c *gin.Context) *model.Feedback {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "404 not found")
		c.Abort()
		return nil
	}

	feedback, err := a.feedbackService.Get(id)
	if err != nil {
		if database.IsNotFound(err) {
			c.String(http.StatusNotFound, "404 not found")
		} else {
			logger.Warning("get feedback err:", err)
			c.String(http.StatusInternalServerError, "something went wrong")
		}
		c.Abort()
		return nil
	}

	if feedback.Username != session.GetLoginUser(c) {
		denyNotOwner(c)
		return nil
	}
	return feedback
}

func (a *FeedbackController) showAdd(c *gin.Context) {
	username := c.Param("username")
	if session.GetLoginUser(c) != username {
		denyNotOwner(c)
		return
	}
	html(c, "feedback_new.html", "Add Feedback", gin.H{
		"username": username,
	})
}

// add creates an entry under the username in the path, which must be
// the session user.
func (a *FeedbackController) add(c *gin.Context) {
	username := c.Param("username")
	if session.GetLoginUser(c) != username {
		denyNotOwner(c)
		return
	}

	var form FeedbackForm
	if err := c.ShouldBind(&form); err != nil {
		html(c, "feedback_new.html", "Add Feedback", gin.H{
			"username": username,
			"errors":   formErrors(err),
			"form":     form,
		})
		return
	}

	feedback, err := a.feedbackService.Create(form.Title, form.Content, username)
	if err != nil {
		logger.Warning("create feedback err:", err)
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	logger.Debugf("%s added feedback %d", username, feedback.Id)
	c.Redirect(http.StatusFound, "/users/"+feedback.Username)
}

func (a *FeedbackController) showEdit(c *gin.Context) {
	feedback := a.loadOwned(c)
	if feedback == nil {
		return
	}
	html(c, "feedback_edit.html", "Edit Feedback", gin.H{
		"feedback": feedback,
		"form": FeedbackForm{
			Title:   feedback.Title,
			Content: feedback.Content,
		},
	})
}

// edit updates title and content of an owned entry.
func (a *FeedbackController) edit(c *gin.Context) {
	feedback := a.loadOwned(c)
	if feedback == nil {
		return
	}

	var form FeedbackForm
	if err := c.ShouldBind(&form); err != nil {
		html(c, "feedback_edit.html", "Edit Feedback", gin.H{
			"feedback": feedback,
			"errors":   formErrors(err),
			"form":     form,
		})
		return
	}

	if err := a.feedbackService.Update(feedback.Id, form.Title, form.Content); err != nil {
		logger.Warning("update feedback err:", err)
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	c.Redirect(http.StatusFound, "/users/"+feedback.Username)
}

// delete removes an owned entry.
func (a *FeedbackController) delete(c *gin.Context) {
	feedback := a.loadOwned(c)
	if feedback == nil {
		return
	}

	if err := a.feedbackService.Delete(feedback.Id); err != nil {
		logger.Warning("delete feedback err:", err)
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	c.Redirect(http.StatusFound, "/users/"+feedback.Username)
}
