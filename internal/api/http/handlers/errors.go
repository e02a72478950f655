package handlers

import (
	"errors"
	"net/http"

	"github.com/weisyn/nftmarket/client/core/pinning"
	"github.com/weisyn/nftmarket/client/core/price"
	"github.com/weisyn/nftmarket/client/core/registry"
	"github.com/weisyn/nftmarket/client/core/wallet"
	"github.com/weisyn/nftmarket/internal/api/http/types"
)

// errorMapping 哨兵错误到 HTTP 状态与错误码
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{wallet.ErrProviderUnavailable, http.StatusServiceUnavailable, types.ErrProviderUnavailable},
	{wallet.ErrConnectionRejected, http.StatusForbidden, types.ErrConnectionRejected},
	{pinning.ErrUploadFailed, http.StatusBadGateway, types.ErrUploadFailed},
	{registry.ErrTransactionRejected, http.StatusForbidden, types.ErrTransactionRejected},
	{registry.ErrTransactionFailed, http.StatusBadGateway, types.ErrTransactionFailed},
	{registry.ErrQueryFailed, http.StatusBadGateway, types.ErrQueryFailed},
	{price.ErrInvalidAmount, http.StatusBadRequest, types.ErrInvalidArgument},
	{price.ErrNegativeAmount, http.StatusBadRequest, types.ErrInvalidArgument},
	{price.ErrTooPrecise, http.StatusBadRequest, types.ErrInvalidArgument},
}

// ErrorStatus 返回错误对应的状态码与错误码
func ErrorStatus(err error) (int, string) {
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, types.ErrInternal
}
