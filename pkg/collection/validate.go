// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package collection

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/content"
)

// NewValidator returns a validator with the collection's custom tags
// registered. The cell-bytes tag requires a string to fit in the data of a
// single cell.
func NewValidator() (*validator.Validate, error) {
	v := validator.New()
	err := v.RegisterValidation("cell-bytes", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			panic(fmt.Errorf("%q is not a string", fl.FieldName()))
		}
		return len(fl.Field().String()) <= content.ChunkSize
	})
	return v, err
}

var defaultValidator = sync.OnceValues(NewValidator)

func validateStruct(v interface{}) error {
	val, err := defaultValidator()
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	err = val.Struct(v)
	if err != nil {
		return errors.ValidationError.Wrap(err)
	}
	return nil
}
