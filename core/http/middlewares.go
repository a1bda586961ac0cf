package http

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"

	"github.com/dgrijalva/jwt-go"
	"github.com/getsentry/raven-go"
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent"
	"github.com/op/go-logging"
	"github.com/satori/go.uuid"
)

var log = logging.MustGetLogger("http")

// RequestID tags every request with an id, reusing the incoming header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewV4().String()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS,PUT,DELETE,PATCH")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Requested-With, Content-Length, Accept-Encoding, X-Request-Id, Authorization")
		c.Writer.Header().Set("Access-Control-Max-Age", "3600")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	}
}

// Authorization reads a bearer JWT signed with secret and exposes its
// user_id claim as "user_id". Requests without a token pass through
// anonymous.
func Authorization(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Request.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}
		token := strings.TrimSpace(header[7:])
		signed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})

		switch e := err.(type) {
		case nil:
		case *jwt.ValidationError:
			if e.Errors&jwt.ValidationErrorExpired != 0 {
				c.AbortWithStatusJSON(401, gin.H{"status": "error", "message": "Token expired, request new one"})
				return
			}
			c.AbortWithStatusJSON(401, gin.H{"status": "error", "message": "Error parsing token"})
			return
		default:
			c.AbortWithStatusJSON(401, gin.H{"status": "error", "message": "Error parsing token"})
			return
		}

		claims, ok := signed.Claims.(jwt.MapClaims)
		if !ok || !signed.Valid {
			c.AbortWithStatusJSON(401, gin.H{"status": "error", "message": "Invalid token"})
			return
		}
		uid, _ := claims["user_id"].(string)
		if uid == "" {
			c.AbortWithStatusJSON(401, gin.H{"status": "error", "message": "Token has no user_id claim"})
			return
		}

		// Set the token for further usage
		c.Set("token", token)
		c.Set("user_id", uid)
		c.Next()
	}
}

func NeedAuthorization() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("token"); !exists {
			c.AbortWithStatusJSON(401, gin.H{"status": "error", "message": "Auth method required"})
			return
		}
		c.Next()
	}
}

// ErrorTracking recovers panics and reports them to sentry when a client is
// present. In debug mode panics propagate.
func ErrorTracking(client *raven.Client, debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if debug {
			c.Next()
			return
		}
		defer func() {
			var packet *raven.Packet

			switch rval := recover().(type) {
			case nil:
				return
			case *net.OpError:
				if rval.Temporary() || rval.Err == syscall.EPIPE || strings.Contains(rval.Error(), "write: broken pipe") {
					return
				}
				packet = raven.NewPacket(rval.Error(), raven.NewException(rval, raven.NewStacktrace(2, 3, nil)))
				log.Errorf("[net.OpError] %v", rval)
			case error:
				packet = raven.NewPacket(rval.Error(), raven.NewException(rval, raven.NewStacktrace(2, 3, nil)))
				log.Errorf("%v", rval)
			default:
				msg := fmt.Sprint(rval)
				packet = raven.NewPacket(msg, raven.NewException(errors.New(msg), raven.NewStacktrace(2, 3, nil)))
				log.Errorf("%v", rval)
			}

			if client != nil {
				client.Capture(packet, map[string]string{"request_id": c.GetString("request_id")})
			}
			c.AbortWithStatusJSON(500, gin.H{"status": "error", "message": "internal error"})
		}()

		c.Next()
	}
}

// APM wraps each request in a newrelic transaction named after its route.
func APM(app newrelic.Application) gin.HandlerFunc {
	return func(c *gin.Context) {
		if app == nil {
			c.Next()
			return
		}
		name := c.FullPath()
		if name == "" {
			name = "unmatched"
		}
		txn := app.StartTransaction(c.Request.Method+" "+name, c.Writer, c.Request)
		defer txn.End()
		c.Next()
	}
}
