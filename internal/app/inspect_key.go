package app

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"changes2aptly/internal/types"
)

func (s Service) InspectKeys(req InspectKeyRequest) (InspectKeyResult, error) {
	if len(req.Keys) == 0 {
		return InspectKeyResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one aptly key is required")
	}
	result := InspectKeyResult{}
	for _, raw := range req.Keys {
		key, err := types.ParseKey(strings.TrimSpace(raw))
		if err != nil {
			return InspectKeyResult{}, err
		}
		result.Keys = append(result.Keys, key)
	}
	return result, nil
}
