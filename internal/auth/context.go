package auth

import (
	"context"

	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/gin-gonic/gin"
)

type userKey struct{}

const ginUserKey = "user"

func WithUser(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFromContext returns the authenticated user, or nil.
func UserFromContext(ctx context.Context) *model.User {
	u, _ := ctx.Value(userKey{}).(*model.User)
	return u
}

func GetUserID(ctx context.Context) string {
	if u := UserFromContext(ctx); u != nil {
		return u.ID
	}
	return ""
}

// CurrentUser reads the user the auth middleware attached to c.
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(ginUserKey); ok {
		if u, ok := v.(*model.User); ok {
			return u
		}
	}
	return UserFromContext(c.Request.Context())
}
