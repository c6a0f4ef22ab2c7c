package featurestore

import "errors"

var (
	errBadMagic           = errors.New("featurestore: bad magic header")
	errUnsupportedVersion = errors.New("featurestore: unsupported encoding version")
)
