package config

import (
	"errors"

	"github.com/ezrec/starjconf/translate"
)

var f = translate.From

var (
	ErrConfigRead     = errors.New(f("config unreadable"))
	ErrConfigParse    = errors.New(f("config invalid"))
	ErrOutputDirEmpty = errors.New(f("output directory empty"))
)

type ErrExtension string

func (err ErrExtension) Error() string {
	return f("extension '%v' must start with '.' and name no directory", string(err))
}

type ErrJobs int

func (err ErrJobs) Error() string {
	return f("jobs %v negative", int(err))
}
