package handlers

import (
	"fmt"
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"treasury/internal/middleware"
)

const (
	msgDonated         = "Successfully donated %d e8s"
	msgVoteRecorded    = "Vote recorded successfully"
	msgExecuted        = "Proposal executed successfully"
	msgSettingsUpdated = "Governance settings updated successfully"
)

var messages = mustCatalog(map[language.Tag]map[string]string{
	language.Indonesian: {
		msgDonated:         "Berhasil berdonasi %d e8s",
		msgVoteRecorded:    "Suara berhasil dicatat",
		msgExecuted:        "Proposal berhasil dieksekusi",
		msgSettingsUpdated: "Pengaturan tata kelola berhasil diperbarui",
	},
})

func mustCatalog(translations map[language.Tag]map[string]string) catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, entries := range translations {
		for key, msg := range entries {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(fmt.Sprintf("handlers: message %q for %s: %v", key, tag, err))
			}
		}
	}
	return b
}

func printer(r *http.Request) *message.Printer {
	return message.NewPrinter(middleware.LanguageFromContext(r.Context()), message.Catalog(messages))
}
