package services

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/pbkdf2"

	"github.com/atelier-nova/atelier_api/model"
)

// SessionService seals admin session records into client-held tokens. There
// is no server-side session table: the cookie is the only copy, and every
// guarantee comes from the AEAD seal.
//
// Token layout: base64url(nonce || AES-256-GCM ciphertext) + "." + random
// hex suffix. The suffix keeps otherwise-identical tokens distinct for
// caches and logs; it carries no authenticated data.
type SessionService struct {
	context.DefaultService

	key    []byte
	maxAge time.Duration

	now func() time.Time
}

const SESSION_SVC = "session_svc"

const (
	sessionMaxAge   = 24 * time.Hour
	tokenSeparator  = "."
	suffixBytes     = 8
	kdfIterations   = 4096
	sessionKeyBytes = 32
)

// Fixed application salt for the PBKDF2 key derivation. The secret itself
// comes from the environment; the salt only domain-separates this use of it.
var sessionKeySalt = []byte("atelier-admin-session-v1")

var errSecretMissing = errors.New("SESSION_SECRET is not set")

func (svc SessionService) Id() string {
	return SESSION_SVC
}

func (svc *SessionService) Configure(ctx *context.Context) error {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return errSecretMissing
	}

	svc.key = deriveSessionKey(secret)
	svc.maxAge = sessionMaxAge
	svc.now = time.Now

	return svc.DefaultService.Configure(ctx)
}

func (svc *SessionService) Start() error {
	return nil
}

// NewSessionService builds a codec outside the service container, with an
// injectable clock.
func NewSessionService(secret string, now func() time.Time) *SessionService {
	if now == nil {
		now = time.Now
	}
	return &SessionService{
		key:    deriveSessionKey(secret),
		maxAge: sessionMaxAge,
		now:    now,
	}
}

func deriveSessionKey(secret string) []byte {
	return pbkdf2.Key([]byte(secret), sessionKeySalt, kdfIterations, sessionKeyBytes, sha256.New)
}

// Create mints a token for a fresh session originating from ip.
func (svc *SessionService) Create(ip string) (string, error) {
	now := svc.now()
	record := model.SessionRecord{
		Created:      now,
		LastActivity: now,
		IP:           ip,
	}
	return svc.seal(record)
}

// Validate decodes and verifies a token. Any failure — malformed encoding,
// tampered ciphertext, undecodable record, or a session older than the
// maximum age — degrades to nil.
func (svc *SessionService) Validate(token string) *model.SessionRecord {
	record, err := svc.open(token)
	if err != nil {
		return nil
	}

	if svc.now().Sub(record.Created) >= svc.maxAge {
		return nil
	}

	return record
}

// Refresh revalidates the token and reissues it with LastActivity bumped.
// Created is preserved, so the absolute expiry stays anchored to login time.
func (svc *SessionService) Refresh(token string) (string, *model.SessionRecord) {
	record := svc.Validate(token)
	if record == nil {
		return "", nil
	}

	record.LastActivity = svc.now()

	fresh, err := svc.seal(*record)
	if err != nil {
		log.WithError(err).Error("Failed to reissue session token")
		return "", nil
	}

	return fresh, record
}

func (svc *SessionService) MaxAge() time.Duration {
	return svc.maxAge
}

func (svc *SessionService) seal(record model.SessionRecord) (string, error) {
	plaintext, err := json.Marshal(record)
	if err != nil {
		return "", err
	}

	aead, err := svc.aead()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := aead.Seal(nonce, nonce, plaintext, nil)

	suffix := make([]byte, suffixBytes)
	if _, err := rand.Read(suffix); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(sealed) + tokenSeparator + hex.EncodeToString(suffix), nil
}

func (svc *SessionService) open(token string) (*model.SessionRecord, error) {
	sealedPart, _, found := strings.Cut(token, tokenSeparator)
	if !found || sealedPart == "" {
		return nil, errors.New("malformed token")
	}

	sealed, err := base64.RawURLEncoding.DecodeString(sealedPart)
	if err != nil {
		return nil, err
	}

	aead, err := svc.aead()
	if err != nil {
		return nil, err
	}

	if len(sealed) < aead.NonceSize() {
		return nil, errors.New("token too short")
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, err
	}

	var record model.SessionRecord
	if err := json.Unmarshal(plaintext, &record); err != nil {
		return nil, err
	}

	return &record, nil
}

func (svc *SessionService) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(svc.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
