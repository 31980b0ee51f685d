package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/osm2svg/internal/domain"
	"github.com/spf13/pflag"
)

// reorderArgs переносит флаги вперёд, а позиционные аргументы ставит после "--".
// Иначе отрицательные координаты вроде -33.9 разбираются как короткие флаги.
func reorderArgs(flags *pflag.FlagSet, args []string) []string {
	var flagArgs, positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			positional = append(positional, args[i+1:]...)
			i = len(args)
		case arg == "-" || !strings.HasPrefix(arg, "-") || isNumber(arg):
			positional = append(positional, arg)
		default:
			flagArgs = append(flagArgs, arg)
			if takesValue(flags, arg) && i+1 < len(args) {
				i++
				flagArgs = append(flagArgs, args[i])
			}
		}
	}

	out := make([]string, 0, len(args)+1)
	out = append(out, flagArgs...)
	out = append(out, "--")
	return append(out, positional...)
}

// takesValue - ждёт ли флаг значение следующим аргументом
func takesValue(flags *pflag.FlagSet, arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}

	var flag *pflag.Flag
	if strings.HasPrefix(arg, "--") {
		flag = flags.Lookup(arg[2:])
	} else {
		// -s20: значение приклеено к флагу
		if len(arg) != 2 {
			return false
		}
		flag = flags.ShorthandLookup(arg[1:])
	}

	return flag != nil && flag.NoOptDefVal == ""
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// parseRequest собирает запрос из NAME MIN_LAT MIN_LON MAX_LAT MAX_LON.
// Диапазоны проверяет RenderUseCase.
func parseRequest(args []string, opts *options) (domain.RenderRequest, error) {
	names := []string{"MIN_LAT", "MIN_LON", "MAX_LAT", "MAX_LON"}
	coords := make([]float64, len(names))

	for i, name := range names {
		v, err := strconv.ParseFloat(args[i+1], 64)
		if err != nil {
			return domain.RenderRequest{}, fmt.Errorf("invalid %s %q: expected a number", name, args[i+1])
		}
		coords[i] = v
	}

	req := domain.NewRenderRequest(args[0], domain.BoundingBox{
		MinLat: coords[0],
		MinLon: coords[1],
		MaxLat: coords[2],
		MaxLon: coords[3],
	})
	req.Step = opts.step
	req.SortByHeight = opts.sortByHeight
	req.BigLinesStep = opts.bigLinesStep

	return req, nil
}
