package utils

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJson serializa o valor com indentação, para logs de depuração
func PrettyJson(in any) string {
	if raw, ok := in.([]byte); ok {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return string(raw)
		}
		in = decoded
	}

	buffer, err := json.MarshalIndent(in, "", "\t")
	if err != nil {
		return ""
	}

	return string(buffer)
}

// CanonicalJson serializa o valor de forma determinística (chaves de mapas ordenadas)
func CanonicalJson(in any) string {
	buffer, err := json.Marshal(in)
	if err != nil {
		return ""
	}
	return string(buffer)
}
