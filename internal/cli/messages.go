package cli

import (
	"fmt"

	"github.com/lherron/scomadm/internal/domain"
)

// Console messages for delete-user and promote-admin.

func userNotFoundMessage(username string) string {
	return fmt.Sprintf("Usuário '%s' não encontrado.", username)
}

func userRemovedMessage(username string) string {
	return fmt.Sprintf("Usuário '%s' removido.", username)
}

func userPromotedMessage(username string) string {
	return fmt.Sprintf("Usuário '%s' promovido a admin.", username)
}

// mutationMessage picks the message for a delete or promote result
func mutationMessage(result domain.MutationResult, applied func(string) string) string {
	if result.Found() {
		return applied(result.Username)
	}
	return userNotFoundMessage(result.Username)
}
