package service

import (
	"strconv"
	"strings"
	"testing"

	"github.com/tools4freee/t4f/internal/checksum"
	"github.com/tools4freee/t4f/internal/entropy"
	t4ferr "github.com/tools4freee/t4f/internal/errors"
	"github.com/tools4freee/t4f/internal/model"
	"github.com/tools4freee/t4f/testutil"
)

func TestGeneratorService_GenerateEveryFamily(t *testing.T) {
	svc := newTestGeneratorService()
	for _, info := range svc.Families() {
		t.Run(string(info.Name), func(t *testing.T) {
			req := &model.GenerationRequest{Family: info.Name}
			if info.Name == model.FamilyHtpasswd {
				req.Username, req.Password = "admin", "hunter2"
			}
			v, err := svc.Generate(req)
			if err != nil {
				t.Fatalf("Generate(%s) failed: %v", info.Name, err)
			}
			if v.Value == "" {
				t.Error("Expected a value")
			}
			if v.Secure != info.Secure {
				t.Errorf("Secure = %v, want %v", v.Secure, info.Secure)
			}
		})
	}
}

func TestGeneratorService_UsesDefaults(t *testing.T) {
	svc := newTestGeneratorService()
	d := svc.Defaults()
	d.HexLength = 5
	d.IntegerMin, d.IntegerMax = 7, 8
	svc.SetDefaults(d)

	v, err := svc.Generate(&model.GenerationRequest{Family: model.FamilyHex})
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Value) != 5 {
		t.Errorf("hex length = %d, want default 5", len(v.Value))
	}

	v, err = svc.Generate(&model.GenerationRequest{Family: model.FamilyInteger})
	if err != nil {
		t.Fatal(err)
	}
	if v.Value != "7" && v.Value != "8" {
		t.Errorf("integer = %s, want 7 or 8", v.Value)
	}
}

func TestGeneratorService_LargeBoundsOutOfBounds(t *testing.T) {
	svc := newTestGeneratorService()

	for _, f := range []model.Family{model.FamilyInteger, model.FamilyPrime} {
		_, err := svc.Generate(&model.GenerationRequest{Family: f, Min: ptr(3e9), Max: ptr(4e9)})
		if !t4ferr.IsOutOfBounds(err) {
			t.Errorf("%s(3e9, 4e9) error = %v, want OutOfBounds", f, err)
		}
		_, err = svc.Generate(&model.GenerationRequest{Family: f, Min: ptr(1.0), Max: ptr(1_000_001.0)})
		if !t4ferr.IsOutOfBounds(err) {
			t.Errorf("%s(1, 1000001) error = %v, want OutOfBounds", f, err)
		}
	}
}

func TestGeneratorService_BcryptBatchCapped(t *testing.T) {
	svc := newTestGeneratorService()

	req := &model.GenerationRequest{Family: "htpasswd", Username: "ada", Password: "pw", Variant: "bcrypt", Count: MaxBcryptBatch + 1}
	if _, err := svc.GenerateBatch(req); !t4ferr.IsOutOfBounds(err) {
		t.Errorf("bcrypt batch of %d error = %v, want OutOfBounds", req.Count, err)
	}

	req.Variant = "sha"
	batch, err := svc.GenerateBatch(req)
	if err != nil {
		t.Fatalf("sha batch failed: %v", err)
	}
	if len(batch.Values) != MaxBcryptBatch+1 {
		t.Errorf("sha batch = %d values", len(batch.Values))
	}
}

func TestGeneratorService_ExplicitParameters(t *testing.T) {
	svc := newTestGeneratorService()

	v, err := svc.Generate(&model.GenerationRequest{Family: "prime", Min: ptr(1.0), Max: ptr(10.0)})
	if err != nil {
		t.Fatal(err)
	}
	switch v.Value {
	case "2", "3", "5", "7":
	default:
		t.Errorf("prime(1, 10) = %s", v.Value)
	}

	v, err = svc.Generate(&model.GenerationRequest{Family: "float", Min: ptr(1.0), Max: ptr(2.0), Precision: ptr(3)})
	if err != nil {
		t.Fatal(err)
	}
	if i := strings.IndexByte(v.Value, '.'); i < 0 || len(v.Value)-i-1 != 3 {
		t.Errorf("float = %s, want 3 decimals", v.Value)
	}

	v, err = svc.Generate(&model.GenerationRequest{Family: "MAC", Separator: "-", Variant: "cisco"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(v.Value, "-") != 5 {
		t.Errorf("mac = %s, want dash separated", v.Value)
	}

	v, err = svc.Generate(&model.GenerationRequest{Family: "password", Length: ptr(40), Charset: "d"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := strconv.ParseUint(v.Value[:18], 10, 64); err != nil || len(v.Value) != 40 {
		t.Errorf("digits-only password = %q", v.Value)
	}

	v, err = svc.Generate(&model.GenerationRequest{Family: "date", From: "2000-01-01", To: "2000-01-01"})
	if err != nil {
		t.Fatal(err)
	}
	if v.Value != "2000-01-01" {
		t.Errorf("date = %s", v.Value)
	}
}

func TestGeneratorService_Errors(t *testing.T) {
	tests := []struct {
		name  string
		req   *model.GenerationRequest
		check func(error) bool
	}{
		{"unknown family", &model.GenerationRequest{Family: "upc"}, t4ferr.IsNotFound},
		{"inverted integer", &model.GenerationRequest{Family: "integer", Min: ptr(10.0), Max: ptr(5.0)}, t4ferr.IsInvalidRange},
		{"fractional integer", &model.GenerationRequest{Family: "integer", Min: ptr(1.5)}, t4ferr.IsInvalidParameters},
		{"hex zero", &model.GenerationRequest{Family: "hex", Length: ptr(0)}, t4ferr.IsOutOfBounds},
		{"hex too long", &model.GenerationRequest{Family: "hex", Length: ptr(2000)}, t4ferr.IsOutOfBounds},
		{"no prime", &model.GenerationRequest{Family: "prime", Min: ptr(24.0), Max: ptr(28.0)}, t4ferr.IsNoPrimeFound},
		{"bad charset", &model.GenerationRequest{Family: "password", Charset: "x"}, t4ferr.IsInvalidParameters},
		{"bad date", &model.GenerationRequest{Family: "date", From: "yesterday"}, t4ferr.IsInvalidParameters},
		{"htpasswd no user", &model.GenerationRequest{Family: "htpasswd", Password: "x"}, t4ferr.IsInvalidParameters},
		{"unknown id kind", &model.GenerationRequest{Family: "id", Variant: "snowflake"}, t4ferr.IsNotFound},
	}
	svc := newTestGeneratorService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(tt.req)
			if !tt.check(err) {
				t.Errorf("Generate(%+v) error = %v", tt.req, err)
			}
		})
	}
}

func TestGeneratorService_SecureUnavailable(t *testing.T) {
	svc := NewGeneratorService(entropy.Provider{Secure: entropy.Unavailable(), Pseudo: entropy.Pseudo()}, model.DefaultConfig().Defaults)
	if svc.SecureAvailable() {
		t.Error("SecureAvailable should be false")
	}

	if _, err := svc.Generate(&model.GenerationRequest{Family: model.FamilyUUID}); !t4ferr.IsEntropyUnavailable(err) {
		t.Errorf("uuid error = %v, want EntropyUnavailable", err)
	}
	// Cosmetic families keep working.
	if _, err := svc.Generate(&model.GenerationRequest{Family: model.FamilyIMEI}); err != nil {
		t.Errorf("imei should not need secure entropy: %v", err)
	}
}

func TestGeneratorService_GenerateBatch(t *testing.T) {
	svc := newTestGeneratorService()

	batch, err := svc.GenerateBatch(&model.GenerationRequest{Family: model.FamilyUUID, Count: 50})
	if err != nil {
		t.Fatal(err)
	}
	if len(batch.Values) != 50 {
		t.Fatalf("Expected 50 values, got %d", len(batch.Values))
	}
	seen := make(map[string]bool)
	for _, v := range batch.Values {
		seen[v] = true
	}
	if len(seen) != 50 {
		t.Error("Batch values should be independent draws")
	}

	one, err := svc.GenerateBatch(&model.GenerationRequest{Family: model.FamilyEAN8})
	if err != nil || len(one.Values) != 1 {
		t.Errorf("Count 0 should mean one value, got %v, %v", one, err)
	}

	for _, n := range []int{-1, MaxBatch + 1} {
		if _, err := svc.GenerateBatch(&model.GenerationRequest{Family: model.FamilyHex, Count: n}); !t4ferr.IsOutOfBounds(err) {
			t.Errorf("Count %d error = %v, want OutOfBounds", n, err)
		}
	}
}

func TestGeneratorService_Validate(t *testing.T) {
	svc := newTestGeneratorService()

	// Everything generated for a validating family validates.
	for _, name := range checksum.Families() {
		v, err := svc.Generate(&model.GenerationRequest{Family: model.Family(name)})
		if err != nil {
			t.Fatal(err)
		}
		res, err := svc.Validate(&model.ValidationRequest{Family: v.Family, Value: v.Value})
		if err != nil {
			t.Fatal(err)
		}
		if !res.Valid {
			t.Errorf("%s %q did not validate: %s", name, v.Value, res.Reason)
		}
	}

	res, err := svc.Validate(&model.ValidationRequest{Family: "isbn-10", Value: "0306406153"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Valid || res.Reason == "" {
		t.Errorf("Bad ISBN-10 should fail with a reason, got %+v", res)
	}

	res, err = svc.Validate(&model.ValidationRequest{Family: "uuid", Value: "f47ac10b-58cc-4372-a567-0e02b2c3d479"})
	if err != nil || !res.Valid {
		t.Errorf("uuid validate = %+v, %v", res, err)
	}

	if _, err := svc.Validate(&model.ValidationRequest{Family: "hex", Value: "ab"}); !t4ferr.IsInvalidParameters(err) {
		t.Errorf("hex validate error = %v, want InvalidParameters", err)
	}
	if _, err := svc.Validate(&model.ValidationRequest{Family: "ean8", Value: " "}); !t4ferr.IsInvalidParameters(err) {
		t.Errorf("empty value error = %v, want InvalidParameters", err)
	}
}

func TestGeneratorService_ValidateHtpasswd(t *testing.T) {
	svc := newTestGeneratorService()

	line, err := svc.Generate(&model.GenerationRequest{Family: "htpasswd", Username: "ada", Password: "s3cret", Variant: "sha"})
	if err != nil {
		t.Fatal(err)
	}

	res, err := svc.Validate(&model.ValidationRequest{Family: "htpasswd", Value: line.Value, Password: "s3cret"})
	if err != nil || !res.Valid {
		t.Errorf("right password = %+v, %v", res, err)
	}
	res, err = svc.Validate(&model.ValidationRequest{Family: "htpasswd", Value: line.Value, Password: "wrong"})
	if err != nil || res.Valid || res.Reason == "" {
		t.Errorf("wrong password = %+v, %v", res, err)
	}
	if _, err := svc.Validate(&model.ValidationRequest{Family: "htpasswd", Value: line.Value}); !t4ferr.IsInvalidParameters(err) {
		t.Errorf("missing password error = %v, want InvalidParameters", err)
	}
}

func TestGeneratorService_SeededCosmeticFamiliesReplay(t *testing.T) {
	defaults := model.DefaultConfig().Defaults
	a := NewGeneratorService(testutil.DeterministicProvider(42), defaults)
	b := NewGeneratorService(testutil.DeterministicProvider(42), defaults)

	for _, f := range []model.Family{model.FamilyIPv4, model.FamilyMAC, model.FamilyEAN13, model.FamilyAddress} {
		req := &model.GenerationRequest{Family: f, Count: 5}
		va, err := a.GenerateBatch(req)
		if err != nil {
			t.Fatalf("GenerateBatch(%s) failed: %v", f, err)
		}
		vb, err := b.GenerateBatch(req)
		if err != nil {
			t.Fatalf("GenerateBatch(%s) failed: %v", f, err)
		}
		if strings.Join(va.Values, ",") != strings.Join(vb.Values, ",") {
			t.Errorf("%s: same seed produced %v and %v", f, va.Values, vb.Values)
		}
	}
}

func TestGeneratorService_SecureFamiliesIgnoreSeed(t *testing.T) {
	svc := NewGeneratorService(testutil.DeterministicProvider(7), model.DefaultConfig().Defaults)
	v1, err := svc.Generate(&model.GenerationRequest{Family: model.FamilyUUID})
	if err != nil {
		t.Fatal(err)
	}
	svc = NewGeneratorService(testutil.DeterministicProvider(7), model.DefaultConfig().Defaults)
	v2, err := svc.Generate(&model.GenerationRequest{Family: model.FamilyUUID})
	if err != nil {
		t.Fatal(err)
	}
	if v1.Value == v2.Value {
		t.Error("uuid must come from the secure source, not the seeded one")
	}
}
