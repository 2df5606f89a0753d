package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tools4freee/t4f/internal/checksum"
	"github.com/tools4freee/t4f/internal/entropy"
	t4ferr "github.com/tools4freee/t4f/internal/errors"
	"github.com/tools4freee/t4f/internal/generator"
	"github.com/tools4freee/t4f/internal/model"
	"github.com/tools4freee/t4f/internal/util"
)

// MaxBatch is the largest Count GenerateBatch accepts.
const MaxBatch = 1000

// MaxBcryptBatch caps bcrypt htpasswd batches; each line costs a full bcrypt hash.
const MaxBcryptBatch = 10

// GeneratorService dispatches generation requests to the generator library.
// It picks the entropy source per family and fills unset parameters from the
// configured defaults. Safe for concurrent use.
type GeneratorService struct {
	entropy entropy.Provider

	mu       sync.RWMutex
	defaults model.DefaultsConfig
}

// NewGeneratorService creates a generator service.
func NewGeneratorService(p entropy.Provider, defaults model.DefaultsConfig) *GeneratorService {
	return &GeneratorService{entropy: p, defaults: defaults}
}

// SetDefaults swaps the defaults used for unset request fields.
func (s *GeneratorService) SetDefaults(d model.DefaultsConfig) {
	s.mu.Lock()
	s.defaults = d
	s.mu.Unlock()
}

// Defaults returns the current defaults.
func (s *GeneratorService) Defaults() model.DefaultsConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaults
}

// SecureAvailable reports whether secure families can run at all.
func (s *GeneratorService) SecureAvailable() bool {
	return s.entropy.Available()
}

// Families lists every family, sorted by name.
func (s *GeneratorService) Families() []model.FamilyInfo {
	return model.Families()
}

// Generate produces one value.
func (s *GeneratorService) Generate(req *model.GenerationRequest) (*model.GeneratedValue, error) {
	info, err := s.resolve(req.Family)
	if err != nil {
		return nil, err
	}
	value, err := s.generate(info, req, s.Defaults())
	if err != nil {
		return nil, err
	}
	return &model.GeneratedValue{Family: info.Name, Value: value, Secure: info.Secure}, nil
}

// GenerateBatch produces req.Count independent values (one when Count is 0).
// Parameters are validated once, before anything is drawn.
func (s *GeneratorService) GenerateBatch(req *model.GenerationRequest) (*model.GeneratedBatch, error) {
	count := req.Count
	if count == 0 {
		count = 1
	}
	if count < 1 || count > MaxBatch {
		return nil, t4ferr.OutOfBounds("count", req.Count, 1, MaxBatch)
	}
	info, err := s.resolve(req.Family)
	if err != nil {
		return nil, err
	}

	defaults := s.Defaults()
	if info.Name == model.FamilyHtpasswd && count > MaxBcryptBatch &&
		strings.EqualFold(stringOr(req.Variant, defaults.HtpasswdAlgorithm), string(generator.HtpasswdBcrypt)) {
		return nil, t4ferr.OutOfBounds("count", req.Count, 1, MaxBcryptBatch)
	}
	values := make([]string, 0, count)
	for i := 0; i < count; i++ {
		v, err := s.generate(info, req, defaults)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return &model.GeneratedBatch{Family: info.Name, Values: values, Secure: info.Secure}, nil
}

// Validate checks value against the family's format or checksum.
func (s *GeneratorService) Validate(req *model.ValidationRequest) (*model.ValidationResult, error) {
	info, err := s.resolve(req.Family)
	if err != nil {
		return nil, err
	}
	if !info.Validates {
		return nil, t4ferr.InvalidParameter("family", fmt.Sprintf("%s values cannot be validated", info.Name))
	}
	value := strings.TrimSpace(req.Value)
	if value == "" {
		return nil, t4ferr.InvalidParameter("value", "must not be empty")
	}

	var reason string
	switch info.Name {
	case model.FamilyUUID:
		reason = generator.ValidateUUID(value)
	case model.FamilyID:
		kind := req.Variant
		if kind == "" {
			kind = s.Defaults().IDKind
		}
		reason = generator.ValidateID(generator.IDKind(kind), value)
	case model.FamilyHtpasswd:
		if req.Password == "" {
			return nil, t4ferr.InvalidParameter("password", "required to check an htpasswd line")
		}
		if !generator.VerifyHtpasswd(value, req.Password) {
			reason = "password does not match"
		}
	default:
		alg, err := checksum.Lookup(string(info.Name))
		if err != nil {
			return nil, err
		}
		reason = alg.Verify(value)
	}
	return &model.ValidationResult{Family: info.Name, Value: value, Valid: reason == "", Reason: reason}, nil
}

func (s *GeneratorService) resolve(f model.Family) (model.FamilyInfo, error) {
	name, err := model.ParseFamily(string(f))
	if err != nil {
		return model.FamilyInfo{}, err
	}
	info, _ := name.Info()
	return info, nil
}

func (s *GeneratorService) source(info model.FamilyInfo) entropy.Source {
	if info.Secure {
		return s.entropy.Secure
	}
	return s.entropy.Pseudo
}

func (s *GeneratorService) generate(info model.FamilyInfo, req *model.GenerationRequest, d model.DefaultsConfig) (string, error) {
	src := s.source(info)

	switch info.Name {
	case model.FamilyInteger:
		min, max, err := intRange(req, d.IntegerMin, d.IntegerMax)
		if err != nil {
			return "", err
		}
		v, err := generator.RangedInteger(src, min, max)
		return strconv.FormatInt(v, 10), err

	case model.FamilyFloat:
		min, max := floatOr(req.Min, d.FloatMin), floatOr(req.Max, d.FloatMax)
		precision := d.Precision
		if req.Precision != nil {
			precision = *req.Precision
		}
		v, err := generator.RangedFloat(src, min, max, precision)
		return strconv.FormatFloat(v, 'f', max0(precision), 64), err

	case model.FamilyPrime:
		min, max, err := intRange(req, d.PrimeMin, d.PrimeMax)
		if err != nil {
			return "", err
		}
		v, err := generator.Prime(src, min, max)
		return strconv.FormatInt(v, 10), err

	case model.FamilyHex:
		return generator.Hex(src, intOr(req.Length, d.HexLength))

	case model.FamilyBase64:
		return generator.Base64(src, intOr(req.Length, d.Base64Bytes))

	case model.FamilyUUID:
		return generator.UUIDv4(src)

	case model.FamilyIMEI, model.FamilyEAN13, model.FamilyEAN8,
		model.FamilyISBN10, model.FamilyISBN13, model.FamilyWPS:
		alg, err := checksum.Lookup(string(info.Name))
		if err != nil {
			return "", err
		}
		return generator.ChecksummedCode(src, alg)

	case model.FamilyAddress:
		return generator.FormattedAddress(src, generator.AddressRequest{
			Kind:    generator.AddressPostal,
			Variant: stringOr(req.Variant, d.Country),
		})

	case model.FamilyIPv4, model.FamilyIPv6, model.FamilyCoin, model.FamilyEmail, model.FamilyMAC:
		ar := generator.AddressRequest{Kind: generator.AddressKind(info.Name), Variant: req.Variant}
		switch info.Name {
		case model.FamilyCoin:
			ar.Variant = stringOr(req.Variant, d.Coin)
		case model.FamilyEmail:
			ar.Variant = stringOr(req.Variant, d.EmailDomain)
		case model.FamilyMAC:
			ar.Separator = stringOr(req.Separator, d.MACSeparator)
		}
		return generator.FormattedAddress(src, ar)

	case model.FamilyPassword:
		opts, err := passwordOptions(stringOr(req.Charset, d.PasswordCharset))
		if err != nil {
			return "", err
		}
		opts.Length = intOr(req.Length, d.PasswordLength)
		opts.ExcludeAmbiguous = req.ExcludeAmbiguous
		return generator.Password(src, opts)

	case model.FamilyHtpasswd:
		algo := generator.HtpasswdAlgorithm(stringOr(req.Variant, d.HtpasswdAlgorithm))
		return generator.Htpasswd(src, req.Username, req.Password, algo)

	case model.FamilyDate:
		from, err := parseDate("from", stringOr(req.From, d.DateFrom))
		if err != nil {
			return "", err
		}
		to, err := parseDate("to", stringOr(req.To, d.DateTo))
		if err != nil {
			return "", err
		}
		v, err := generator.Date(src, from, to)
		return util.FormatDate(v), err

	case model.FamilyID:
		return generator.UniqueID(src, generator.IDKind(stringOr(req.Variant, d.IDKind)))
	}

	return "", t4ferr.UnknownFamily(string(info.Name))
}

func intRange(req *model.GenerationRequest, defMin, defMax int64) (int64, int64, error) {
	min, err := wholeOr("min", req.Min, defMin)
	if err != nil {
		return 0, 0, err
	}
	max, err := wholeOr("max", req.Max, defMax)
	if err != nil {
		return 0, 0, err
	}
	return min, max, nil
}

func wholeOr(field string, v *float64, def int64) (int64, error) {
	if v == nil {
		return def, nil
	}
	if *v != math.Trunc(*v) || math.IsInf(*v, 0) {
		return 0, t4ferr.InvalidParameter(field, fmt.Sprintf("%v is not a whole number", *v))
	}
	if math.Abs(*v) > generator.MaxMagnitude {
		return 0, t4ferr.OutOfBounds(field, *v, -generator.MaxMagnitude, generator.MaxMagnitude)
	}
	return int64(*v), nil
}

// passwordOptions parses a charset like "luds" (lower, upper, digits, symbols).
func passwordOptions(charset string) (generator.PasswordOptions, error) {
	var opts generator.PasswordOptions
	for _, c := range strings.ToLower(charset) {
		switch c {
		case 'l':
			opts.Lower = true
		case 'u':
			opts.Upper = true
		case 'd':
			opts.Digits = true
		case 's':
			opts.Symbols = true
		default:
			return opts, t4ferr.InvalidParameter("charset", fmt.Sprintf("unknown class %q (use l, u, d, s)", c))
		}
	}
	return opts, nil
}

func parseDate(field, s string) (time.Time, error) {
	t, err := util.ParseDate(s)
	if err != nil {
		return time.Time{}, t4ferr.InvalidParameter(field, fmt.Sprintf("%q is not a YYYY-MM-DD date", s))
	}
	return t, nil
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func stringOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func max0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
