package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/ledgerwatch/log/v3"
	"github.com/pkg/errors"

	"github.com/viniciusth/strindex"
)

// Settings holds the defaults for the persistent flags, taken from the
// environment.
type Settings struct {
	Verbosity string
	NFC       bool
	Alphabet  string
}

const (
	envVerbosity = "STRINDEX_VERBOSITY"
	envNFC       = "STRINDEX_NFC"
	envAlphabet  = "STRINDEX_ALPHABET"
)

// LoadSettings reads STRINDEX_* variables, applying defaults for the unset
// ones. Invalid values are reported rather than ignored.
func LoadSettings() (Settings, error) {
	nfc, err := getEnvBool(envNFC, false)
	if err != nil {
		return Settings{}, err
	}

	s := Settings{
		Verbosity: getEnvString(envVerbosity, "warn"),
		NFC:       nfc,
		Alphabet:  getEnvString(envAlphabet, "a-z"),
	}
	if _, err := log.LvlFromString(s.Verbosity); err != nil {
		return Settings{}, errors.Wrapf(err, "invalid value for %s", envVerbosity)
	}
	if _, err := ParseAlphabet(s.Alphabet); err != nil {
		return Settings{}, errors.Wrapf(err, "invalid value for %s", envAlphabet)
	}
	return s, nil
}

// ParseAlphabet accepts a symbol range written as "<first>-<last>", both
// single bytes, e.g. "a-z" or "0-9".
func ParseAlphabet(s string) (strindex.Alphabet, error) {
	first, last, ok := strings.Cut(s, "-")
	if !ok || len(first) != 1 || len(last) != 1 || last[0] < first[0] {
		return strindex.Alphabet{}, errors.Errorf("alphabet %q is not a range like a-z", s)
	}
	return strindex.Alphabet{First: int(first[0]), Size: int(last[0]-first[0]) + 1}, nil
}

func setupLogging(verbosity string) error {
	lvl, err := log.LvlFromString(verbosity)
	if err != nil {
		return errors.Wrap(err, "verbosity")
	}
	log.Root().SetHandler(log.LvlFilterHandler(lvl, log.StderrHandler))
	return nil
}

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, errors.Wrapf(err, "invalid value for %s: %q", key, val)
	}
	return b, nil
}
