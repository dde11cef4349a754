// Copyright 2016 Aleksandr Demakin. All rights reserved.

package ipc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	a := assert.New(t)
	name, err := ValidateName("/obj")
	if a.NoError(err) {
		a.Equal(Name("/obj"), name)
		a.Equal("/obj", name.String())
		a.Equal("obj", name.Base())
	}
	name, err = ValidateName("/obj.with-punct_42")
	if a.NoError(err) {
		a.Equal("obj.with-punct_42", name.Base())
	}
}

func TestValidateNameRejectsMalformed(t *testing.T) {
	a := assert.New(t)
	for _, raw := range []string{
		"",
		"/",
		"obj",
		"/a/b",
		"//obj",
		"/obj/",
		"/" + strings.Repeat("x", MaxNameLen),
	} {
		_, err := ValidateName(raw)
		if a.Error(err, "name %q must be rejected", raw) {
			a.Equal(InvalidArgument, ErrKind(err))
		}
	}
}

func TestValidateNameIsIdempotent(t *testing.T) {
	a := assert.New(t)
	name, err := ValidateName("/obj")
	if !a.NoError(err) {
		return
	}
	same, err := ValidateName(string(name))
	a.NoError(err)
	a.Equal(name, same)
}

func TestValidateNameMaxLen(t *testing.T) {
	a := assert.New(t)
	longest := "/" + strings.Repeat("x", MaxNameLen-1)
	name, err := ValidateName(longest)
	if a.NoError(err) {
		a.Equal(MaxNameLen, len(name.String()))
	}
}
