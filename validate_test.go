package clip

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRange(t *testing.T) {
	v := Range(1, 64)
	assert.NoError(t, v(1))
	assert.NoError(t, v(64))
	assert.NoError(t, v(3.5))
	assert.Error(t, v(0))
	assert.Error(t, v(65))
	assert.Error(t, v("many"))
}

func TestChoice(t *testing.T) {
	v := Choice("copy", "move")
	assert.NoError(t, v("copy"))
	assert.Error(t, v("Copy")) // case-sensitive
	assert.Error(t, v("link"))
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.txt")
	os.WriteFile(present, []byte("x"), 0o640)

	v := Exists()
	assert.NoError(t, v(present))
	assert.Error(t, v(filepath.Join(dir, "absent.txt")))
	assert.Error(t, v(42))
}

func TestExistsOnCollaborator(t *testing.T) {
	calls := []string{}
	v := ExistsOn(func(name string) (os.FileInfo, error) {
		calls = append(calls, name)
		if name == "known" {
			return nil, nil
		}
		return nil, os.ErrNotExist
	})
	assert.NoError(t, v("known"))
	assert.Error(t, v("unknown"))
	assert.Equal(t, []string{"known", "unknown"}, calls)
}

func TestChainShortCircuits(t *testing.T) {
	order := []string{}
	fail := Custom(func(any) error {
		order = append(order, "fail")
		return errors.New("nope")
	})
	after := Custom(func(any) error {
		order = append(order, "after")
		return nil
	})

	verr := runValidators("x", 1, []Validator{fail, after})
	if assert.NotNil(t, verr) {
		assert.Equal(t, ValidationFailed, verr.Kind)
		assert.Equal(t, "x", verr.Arg)
	}
	// only the first failure runs and is reported
	assert.Equal(t, []string{"fail"}, order)
}

func TestChainPanicBecomesFailure(t *testing.T) {
	boom := Custom(func(any) error { panic("boom") })
	verr := runValidators("x", 1, []Validator{boom})
	if assert.NotNil(t, verr) {
		assert.Equal(t, ValidationFailed, verr.Kind)
	}
}

func TestValidatorRegistry(t *testing.T) {
	v, err := ValidatorByName("range", "1", "10")
	assert.NoError(t, err)
	assert.NoError(t, v(5))
	assert.Error(t, v(11))

	v, err = ValidatorByName("choice", "a", "b")
	assert.NoError(t, err)
	assert.NoError(t, v("a"))
	assert.Error(t, v("c"))

	_, err = ValidatorByName("exists")
	assert.NoError(t, err)

	_, err = ValidatorByName("range", "1")
	assert.Error(t, err)
	_, err = ValidatorByName("range", "x", "y")
	assert.Error(t, err)
	_, err = ValidatorByName("no-such-validator")
	assert.Error(t, err)
}
