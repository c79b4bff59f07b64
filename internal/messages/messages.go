// Package messages holds every user-facing string sent by the bot, so wording
// stays in one place and is easy to update or translate.
package messages

import "fmt"

const HelpText = "Send me any text to add it to your list. Each line will be a new item.\n" +
	"You can tap the checkbox button next to an item to mark it as bought.\n\n" +
	"<b>Commands:</b>\n" +
	"/list - Show the current list.\n" +
	"/archive - Finalize and archive the current list, starting a new one.\n" +
	"/done - Archive only checked items, keeping the rest.\n" +
	"/delete - Show a temporary panel to delete items from the list.\n" +
	"/share - Send the list as plain text for copying.\n" +
	"/nuke - Completely delete the current list.\n" +
	"/parse - Parse this message into items via AI.\n" +
	"/token - Issue an API token for this chat.\n" +
	"/tokens - List API tokens issued for this chat.\n" +
	"/revoke - Revoke an API token."

const (
	NoActiveListToEdit    = "There is no active list to edit."
	NoActiveListToArchive = "There is no active list to archive."

	ListEmptyAddItem = "Your list is empty! Send any message to add an item."
	ListEmpty        = "Your list is empty!"
	ListNowEmpty     = "List is now empty!"
	ListArchived     = "List archived! Send a message to start a new one."
	ListNuked        = "The active list has been nuked."

	CheckedItemsArchived    = "Checked items archived!"
	NoCheckedItemsToArchive = "There are no checked items to archive."

	DeleteSelectPrompt = "Select items to delete, then tap 'Done Deleting'."
	DeleteDoneLabel    = "🗑️ Done Deleting"
	DeleteDMFailed     = "Unable to send you a private delete panel. Have you started me in private?"
	DefaultChatName    = "your list"

	ArchivedListHeader = "--- Archived List ---"

	ParsingDisabled = "AI parsing is disabled."

	TokenIssued      = "API token issued. Keep it secret:"
	TokensEmpty      = "No API tokens have been issued for this chat."
	TokenRevoked     = "Token revoked."
	TokenNotFound    = "Token not found or already revoked."
	TokenRevokeUsage = "Usage: /revoke <token>"
)

// DeleteDMText is the private panel header naming the chat the session edits.
func DeleteDMText(chatName, listText string) string {
	return fmt.Sprintf("Deleting items from %s.\n\n%s", chatName, listText)
}

// DeleteUserSelectingText is the group-visible notice shown while a delete
// session is active.
func DeleteUserSelectingText(userName string) string {
	return fmt.Sprintf("%s is selecting items to delete...", userName)
}
