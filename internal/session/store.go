package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"user-crud/internal/cache"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// CookieName 是攜帶簽章 session ID 的 cookie
	CookieName = "session"
	// DefaultTTL 在 Config.TTL 未設定時使用
	DefaultTTL = 24 * time.Hour

	sessionKeyPrefix   = "session:"
	userIndexKeyPrefix = "user_sessions:"
)

var (
	ErrNoSession    = errors.New("session not found")
	ErrInvalidToken = errors.New("invalid session token")
)

// 以下變數讓測試可以替換
var (
	timeNow         = time.Now
	newID           = uuid.NewString
	parseWithClaims = jwt.ParseWithClaims
	jsonMarshal     = json.Marshal
)

// Config 是 session 的啟動設定
type Config struct {
	Secret []byte
	TTL    time.Duration
	// Secure 設定 cookie 只透過 HTTPS 傳送
	Secure bool
}

// Store 將 session 內容存在 Redis (session:<id>)，
// 並維護每位使用者的 session 索引 (user_sessions:<user_id>) 供刪除使用者時清除
type Store struct {
	cache  cache.Cache
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewStore(c cache.Cache, cfg Config) *Store {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{cache: c, secret: cfg.Secret, ttl: ttl, secure: cfg.Secure}
}

func sessionKey(id string) string { return sessionKeyPrefix + id }

func userIndexKey(userID int) string { return userIndexKeyPrefix + strconv.Itoa(userID) }

// Load 驗證 cookie 的簽章並從 Redis 讀取 session
func (s *Store) Load(ctx context.Context, token string) (*Session, error) {
	id, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}

	raw, err := s.cache.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}

	sess := &Session{}
	if err := json.Unmarshal(raw, sess); err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	sess.id = id
	return sess, nil
}

// Save 寫入 session 並回傳新的 cookie 值；每次儲存都會重設過期時間
func (s *Store) Save(ctx context.Context, sess *Session) (string, error) {
	if sess.previousID != "" {
		if err := s.cache.Del(ctx, sessionKey(sess.previousID)).Err(); err != nil {
			return "", fmt.Errorf("Save: drop rotated session: %w", err)
		}
		sess.previousID = ""
	}
	if sess.id == "" {
		sess.id = newID()
	}

	data, err := jsonMarshal(sess)
	if err != nil {
		return "", fmt.Errorf("Save: %w", err)
	}
	if err := s.cache.Set(ctx, sessionKey(sess.id), data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("Save: %w", err)
	}

	if sess.UserID != 0 {
		idx := userIndexKey(sess.UserID)
		if err := s.cache.SAdd(ctx, idx, sess.id).Err(); err != nil {
			return "", fmt.Errorf("Save: index session: %w", err)
		}
		if err := s.cache.Expire(ctx, idx, s.ttl).Err(); err != nil {
			return "", fmt.Errorf("Save: index session: %w", err)
		}
	}

	token, err := s.signToken(sess.id)
	if err != nil {
		return "", fmt.Errorf("Save: %w", err)
	}
	sess.dirty = false
	return token, nil
}

// PurgeUser 刪除某位使用者所有仍有效的 session
func (s *Store) PurgeUser(ctx context.Context, userID int) error {
	idx := userIndexKey(userID)
	ids, err := s.cache.SMembers(ctx, idx).Result()
	if err != nil {
		return fmt.Errorf("PurgeUser: %w", err)
	}
	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKey(id))
	}
	keys = append(keys, idx)
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("PurgeUser: %w", err)
	}
	return nil
}

// Cookie 建立攜帶 token 的 cookie
func (s *Store) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  timeNow().Add(s.ttl),
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *Store) signToken(id string) (string, error) {
	now := timeNow()
	claims := jwt.RegisteredClaims{
		ID:        id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Store) parseToken(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := parseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(timeNow))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.ID == "" {
		return "", ErrInvalidToken
	}
	return claims.ID, nil
}
