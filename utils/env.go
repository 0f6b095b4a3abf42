package utils

import (
	"fmt"
	"os"
	"strconv"
)

// GetEnv returns the environment variable parsed as T, or the provided
// default when the variable is unset.
func GetEnv[T string | int | bool](name string, defaultValue T) T {
	value, ok := os.LookupEnv(name)
	if !ok {
		return defaultValue
	}
	return parseEnv[T](name, value)
}

// GetRequiredEnv panics when the variable is unset: it is meant for
// configuration read once at startup.
func GetRequiredEnv[T string | int | bool](name string) T {
	value, ok := os.LookupEnv(name)
	if !ok {
		panic(fmt.Sprintf("required environment variable %s is not set", name))
	}
	return parseEnv[T](name, value)
}

func parseEnv[T string | int | bool](name, value string) T {
	var out T
	switch ptr := any(&out).(type) {
	case *string:
		*ptr = value
	case *int:
		parsed, err := strconv.Atoi(value)
		if err != nil {
			panic(fmt.Sprintf("environment variable %s is not an integer: %v", name, err))
		}
		*ptr = parsed
	case *bool:
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			panic(fmt.Sprintf("environment variable %s is not a boolean: %v", name, err))
		}
		*ptr = parsed
	}
	return out
}
