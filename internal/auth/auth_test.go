package auth_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/coursetrack/internal/auth"
	"github.com/golang-jwt/jwt/v5"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Suite")
}

var _ = Describe("Verifier", func() {
	var (
		key      *rsa.PrivateKey
		verifier *auth.Verifier
	)

	signToken := func(key *rsa.PrivateKey, claims auth.Claims) string {
		token := jwt.NewWithClaims(jwt.SigningMethodRS256, &claims)
		signed, err := token.SignedString(key)
		Expect(err).ToNot(HaveOccurred())
		return signed
	}

	BeforeEach(func() {
		var err error
		key, err = rsa.GenerateKey(rand.Reader, 2048)
		Expect(err).ToNot(HaveOccurred())
		verifier = auth.NewVerifier(&key.PublicKey)
	})

	It("should accept a valid token and expose the admin subject", func() {
		token := signToken(key, auth.Claims{
			Name: "Admin One",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "admin-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})

		claims, err := verifier.VerifyToken(token)

		Expect(err).ToNot(HaveOccurred())
		Expect(claims.AdminSubject()).To(Equal("Admin One"))
	})

	It("should fall back to the subject when no name claim is present", func() {
		token := signToken(key, auth.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "admin-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})

		claims, err := verifier.VerifyToken(token)

		Expect(err).ToNot(HaveOccurred())
		Expect(claims.AdminSubject()).To(Equal("admin-1"))
	})

	It("should reject an expired token", func() {
		token := signToken(key, auth.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "admin-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		})

		_, err := verifier.VerifyToken(token)

		Expect(err).To(HaveOccurred())
	})

	It("should reject a token signed by another key", func() {
		otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
		Expect(err).ToNot(HaveOccurred())

		token := signToken(otherKey, auth.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "admin-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})

		_, err = verifier.VerifyToken(token)

		Expect(err).To(HaveOccurred())
	})

	It("should reject an HMAC token even with a matching payload", func() {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "admin-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		signed, err := token.SignedString([]byte("shared-secret"))
		Expect(err).ToNot(HaveOccurred())

		_, err = verifier.VerifyToken(signed)

		Expect(err).To(HaveOccurred())
	})

	It("should reject garbage", func() {
		_, err := verifier.VerifyToken("not-a-token")

		Expect(err).To(HaveOccurred())
	})
})
