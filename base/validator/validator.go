package validator

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/niftyhouse/indexer/domain"
)

// IsValidAddress returns is an address valid or not
func IsValidAddress(address string) bool {
	checksum := common.HexToAddress(address).Hex()
	return strings.ToLower(checksum) == strings.ToLower(address)
}

// ValidateChainTarget checks the chain config the event pipeline cannot run
// without. The zero address is rejected too: it only shows up when the
// configured contract fails to parse.
func ValidateChainTarget(chainId int64, contract string) error {
	if chainId <= 0 {
		return domain.ErrInvalidChainId
	}
	if !IsValidAddress(contract) || common.HexToAddress(contract) == (common.Address{}) {
		return domain.ErrInvalidAddress
	}
	return nil
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
