// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

package checks

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/toeirei/devcheck/config"
	"github.com/toeirei/devcheck/core/model"
)

// defaultHostNames are names found in stock hosts files on Linux and macOS.
var defaultHostNames = map[string]bool{
	"localhost":             true,
	"localhost.localdomain": true,
	"localhost4":            true,
	"localhost6":            true,
	"ip6-localhost":         true,
	"ip6-loopback":          true,
	"ip6-localnet":          true,
	"ip6-mcastprefix":       true,
	"ip6-allnodes":          true,
	"ip6-allrouters":        true,
	"ip6-allhosts":          true,
	"broadcasthost":         true,
}

// CustomHostNames returns the host names in a hosts file that are not part
// of the stock entries, in file order. The machine's own hostname counts as
// stock.
func CustomHostNames(content, hostname string) []string {
	var names []string
	sc := bufio.NewScanner(strings.NewReader(content))
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		for _, name := range fields[1:] {
			lower := strings.ToLower(name)
			if defaultHostNames[lower] || (hostname != "" && (lower == hostname || strings.HasPrefix(lower, hostname+"."))) {
				continue
			}
			names = append(names, name)
		}
	}
	return lo.Uniq(names)
}

// Hosts reports custom entries in the hosts file as INFO.
func Hosts(path string) model.Check {
	c := model.Check{Category: model.CategorySystem, Item: "Custom hosts entries"}
	data, err := os.ReadFile(config.ExpandHome(path))
	if err != nil {
		c.Status, c.Details = model.StatusError, err.Error()
		return c
	}
	hostname, _ := os.Hostname()
	names := CustomHostNames(string(data), strings.ToLower(hostname))
	if len(names) == 0 {
		c.Status, c.Details = model.StatusOK, "none"
		return c
	}
	c.Status = model.StatusInfo
	c.Details = fmt.Sprintf("%d: %s", len(names), strings.Join(names, ", "))
	return c
}
