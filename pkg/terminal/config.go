package terminal

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/go-delve/dwarfdis/pkg/config"
	"github.com/go-delve/dwarfdis/pkg/dwarf/opcache"
)

func configureCmd(t *Term, args []string) error {
	if len(args) == 0 {
		return errors.New("wrong number of arguments to \"config\"")
	}
	switch args[0] {
	case "-list":
		return configureList(t)
	case "-save":
		return config.SaveConfig(t.conf)
	case "alias":
		return configureSetAlias(t, args[1:])
	}
	if len(args) != 2 {
		return errors.New("wrong number of arguments to \"config\"")
	}
	return configureSet(t, args[0], args[1])
}

// configField returns the field of conf whose yaml name is name.
func configField(conf *config.Config, name string) (reflect.Value, bool) {
	v := reflect.ValueOf(conf).Elem()
	for i := 0; i < v.NumField(); i++ {
		if yamlName(v.Type().Field(i)) == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func yamlName(f reflect.StructField) string {
	name := f.Tag.Get("yaml")
	if comma := strings.Index(name, ","); comma >= 0 {
		name = name[:comma]
	}
	return name
}

func configureList(t *Term) error {
	w := tabwriter.NewWriter(t.stdout, 0, 8, 1, ' ', 0)
	v := reflect.ValueOf(t.conf).Elem()
	for i := 0; i < v.NumField(); i++ {
		name := yamlName(v.Type().Field(i))
		if name == "" || name == "aliases" {
			continue
		}
		fmt.Fprintf(w, "%s\t%v\n", name, v.Field(i))
	}
	return w.Flush()
}

func configureSet(t *Term, name, value string) error {
	field, ok := configField(t.conf, name)
	if !ok || name == "aliases" {
		return fmt.Errorf("%q is not a configuration parameter", name)
	}

	switch field.Kind() {
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("argument to %q must be a positive number", name)
		}
		field.SetInt(int64(n))
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("argument to %q must be true or false", name)
		}
		field.SetBool(b)
	case reflect.String:
		if name == "color" {
			switch value {
			case config.ColorAuto, config.ColorAlways, config.ColorNever:
			default:
				return fmt.Errorf("argument to %q must be one of auto, always or never", name)
			}
		}
		field.SetString(value)
	default:
		return fmt.Errorf("unsupported type for configuration key %q", name)
	}
	return t.applyConfig(name)
}

// applyConfig propagates a changed configuration parameter to the printer
// and the cache.
func (t *Term) applyConfig(name string) error {
	switch name {
	case "color":
		t.printer.Color = ColorEnabled(t.conf.Color, os.Stdout)
	case "show-bytes":
		t.printer.ShowBytes = t.conf.ShowBytes
	case "mnemonic-color":
		t.printer.MnemonicColor = t.conf.MnemonicColor
	case "cache-size":
		cache, err := opcache.New(t.conf.CacheSize)
		if err != nil {
			return err
		}
		t.cache = cache
	}
	return nil
}

// configureSetAlias adds the alias args[1] to command args[0] or, with a
// single argument, deletes the alias args[0].
func configureSetAlias(t *Term, args []string) error {
	switch len(args) {
	case 1:
		for k, v := range t.conf.Aliases {
			for i := range v {
				if v[i] == args[0] {
					t.conf.Aliases[k] = append(v[:i:i], v[i+1:]...)
					break
				}
			}
		}
	case 2:
		cmd, alias := args[0], args[1]
		if !t.cmds.isCommand(cmd) {
			return fmt.Errorf("unknown command %q", cmd)
		}
		if t.conf.Aliases == nil {
			t.conf.Aliases = make(map[string][]string)
		}
		t.conf.Aliases[cmd] = append(t.conf.Aliases[cmd], alias)
	default:
		return errors.New("wrong number of arguments to \"config alias\"")
	}
	t.cmds.Merge(t.conf.Aliases)
	return nil
}
