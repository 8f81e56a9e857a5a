// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/collection"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/address"
)

// newValidator extends the collection validator with ton-addr, which requires
// a string to be a raw or user-friendly address.
func newValidator() (*validator.Validate, error) {
	v, err := collection.NewValidator()
	if err != nil {
		return nil, err
	}
	err = v.RegisterValidation("ton-addr", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			panic(fmt.Errorf("%q is not a string", fl.FieldName()))
		}
		_, err := address.Parse(fl.Field().String())
		return err == nil
	})
	return v, err
}

var getValidator = sync.OnceValues(newValidator)

func (c *Config) Validate() error {
	v, err := getValidator()
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	err = v.Struct(c)
	if err != nil {
		return errors.ValidationError.Wrap(err)
	}
	return nil
}
