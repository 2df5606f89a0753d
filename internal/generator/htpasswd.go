package generator

import (
	"crypto/sha1"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/tools4freee/t4f/internal/entropy"
	t4ferr "github.com/tools4freee/t4f/internal/errors"
)

// HtpasswdAlgorithm names a hash scheme Apache understands.
type HtpasswdAlgorithm string

const (
	HtpasswdBcrypt HtpasswdAlgorithm = "bcrypt"
	HtpasswdSHA    HtpasswdAlgorithm = "sha"
)

// bcrypt ignores everything past 72 bytes; refuse rather than truncate.
const maxBcryptPassword = 72

// Htpasswd returns a "user:hash" line for an Apache htpasswd file.
func Htpasswd(src entropy.Source, user, password string, algo HtpasswdAlgorithm) (string, error) {
	if user == "" {
		return "", t4ferr.InvalidParameter("username", "must not be empty")
	}
	if strings.ContainsAny(user, ":\n") {
		return "", t4ferr.InvalidParameter("username", "must not contain ':' or newlines")
	}
	if password == "" {
		return "", t4ferr.InvalidParameter("password", "must not be empty")
	}

	switch HtpasswdAlgorithm(strings.ToLower(string(algo))) {
	case "", HtpasswdBcrypt:
		if len(password) > maxBcryptPassword {
			return "", t4ferr.OutOfBounds("password length", len(password), 1, maxBcryptPassword)
		}
		// bcrypt draws its salt from crypto/rand; refuse when that is not usable.
		if err := entropy.RequireSecure(src); err != nil {
			return "", err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return "", t4ferr.EntropyUnavailable(err)
		}
		return user + ":" + string(hash), nil
	case HtpasswdSHA:
		sum := sha1.Sum([]byte(password))
		return user + ":{SHA}" + base64.StdEncoding.EncodeToString(sum[:]), nil
	default:
		return "", t4ferr.UnknownVariant("htpasswd algorithm", string(algo))
	}
}

// VerifyHtpasswd reports whether password matches the hash in line.
func VerifyHtpasswd(line, password string) bool {
	_, hash, ok := strings.Cut(line, ":")
	if !ok {
		return false
	}
	if rest, isSHA := strings.CutPrefix(hash, "{SHA}"); isSHA {
		sum := sha1.Sum([]byte(password))
		return rest == base64.StdEncoding.EncodeToString(sum[:])
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
