package api

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/deskhive/deskhive-backend/dto"
	"github.com/deskhive/deskhive-backend/models"
	"github.com/deskhive/deskhive-backend/utils"
)

const TriggerSecretHeader = "X-Trigger-Secret"

// Authentication resolves the request credential to a caller identity:
// either the pre-shared trigger secret (trusted, system-triggered
// invocations) or a bearer token carrying the interactive principal. The
// tenant-admin check itself happens later, in the usecase, once the rule's
// tenant is known.
type Authentication struct {
	triggerSecret []byte
	jwtSigningKey []byte
}

func NewAuthentication(triggerSecret string, jwtSigningKey []byte) Authentication {
	return Authentication{
		triggerSecret: []byte(triggerSecret),
		jwtSigningKey: jwtSigningKey,
	}
}

func (a Authentication) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, err := a.callerFromRequest(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.APIErrorResponse{Error: err.Error()})
			return
		}
		c.Request = c.Request.WithContext(
			utils.StoreCallerInContext(c.Request.Context(), caller))
		c.Next()
	}
}

func (a Authentication) callerFromRequest(c *gin.Context) (models.Caller, error) {
	if secret := c.GetHeader(TriggerSecretHeader); secret != "" {
		if len(a.triggerSecret) == 0 ||
			subtle.ConstantTimeCompare([]byte(secret), a.triggerSecret) != 1 {
			return nil, errors.Wrap(models.UnAuthorizedError, "invalid trigger secret")
		}
		return models.TrustedCaller{}, nil
	}

	authorization := c.GetHeader("Authorization")
	if authorization == "" {
		return nil, errors.Wrap(models.UnAuthorizedError, "missing credentials")
	}
	token, found := strings.CutPrefix(authorization, "Bearer ")
	if !found {
		return nil, errors.Wrap(models.UnAuthorizedError, "invalid authorization header")
	}

	userId, err := a.validateToken(token)
	if err != nil {
		return nil, err
	}
	return models.AuthenticatedCaller{UserId: userId}, nil
}

func (a Authentication) validateToken(token string) (uuid.UUID, error) {
	claims := jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Newf("unexpected signing method %v", t.Header["alg"])
		}
		return a.jwtSigningKey, nil
	})
	if err != nil {
		return uuid.Nil, errors.Wrap(models.UnAuthorizedError, "invalid bearer token")
	}

	userId, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errors.Wrap(models.UnAuthorizedError, "bearer token subject is not a user id")
	}
	return userId, nil
}
