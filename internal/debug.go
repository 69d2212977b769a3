package internal

import (
	"log"
	"os"
	"os/user"
	"regexp"
	"sort"
	"strings"

	"github.com/earthboundkid/versioninfo/v2"
)

func ShowVersion() {
	log.Printf("Version: %s\n", versioninfo.Short())
}

func UserInfo() {
	log.Printf("PID: %d", os.Getpid())
	currentUser, err := user.Current()
	if err != nil {
		log.Printf("Error getting current user: %v", err)
		return
	}
	log.Printf("User: uid=%s(%s) gid=%s", currentUser.Uid, currentUser.Username, currentUser.Gid)
}

func EnvironmentVars() {
	log.Println("Environment variables")

	sensitiveRegex := regexp.MustCompile(`(?i)(PASSWORD|API_KEY|ACCESS_KEY|SECRET|TOKEN)`)
	environ := os.Environ()
	sort.Strings(environ)

	for _, entry := range environ {
		kv := strings.SplitN(entry, "=", 2)
		if sensitiveRegex.MatchString(kv[0]) {
			log.Printf("  %s: ********\n", kv[0])
		} else {
			log.Printf("  %s: %s\n", kv[0], kv[1])
		}
	}
}
