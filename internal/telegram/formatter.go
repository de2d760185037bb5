package telegram

import (
	"fmt"
	"strings"

	"github.com/daas/portwatch/internal/maneuver"
	"github.com/daas/portwatch/internal/store"
)

// TimestampLayout is the day-first layout used in status replies.
const TimestampLayout = "02/01/2006 15:04:05"

// Fixed replies of the command surface.
const (
	PingReply     = "Pong! Bot ativo ✅"
	UsageReply    = "❗ Use assim: /detalhes NomeDoNavio"
	NotFoundReply = "⚠️ Nenhum navio encontrado com esse nome."
	NoCheckReply  = "🤖 O bot ainda não realizou a primeira checagem do site."
)

var markdownEscaper = strings.NewReplacer(
	"_", `\_`,
	"*", `\*`,
	"`", "\\`",
	"[", `\[`,
)

// EscapeMarkdown escapes the characters that legacy Telegram Markdown treats as entity markers.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// FormatAlert formats the short message pushed when a new maneuver shows up
func FormatAlert(m maneuver.Maneuver) string {
	var msg strings.Builder

	msg.WriteString("🚢 *Nova manobra detectada!*\n\n")
	msg.WriteString(fmt.Sprintf("🛳️ *Navio:* %s\n", EscapeMarkdown(m.Name)))
	msg.WriteString(fmt.Sprintf("🚩 *Bandeira:* %s\n", EscapeMarkdown(m.Flag)))
	msg.WriteString(fmt.Sprintf("⚓ *Tipo:* %s\n", EscapeMarkdown(m.Type)))
	msg.WriteString(fmt.Sprintf("🏗️ *Berço:* %s\n", EscapeMarkdown(m.Berth)))
	msg.WriteString(fmt.Sprintf("📅 *Data:* %s | 🕓 *Hora:* %s\n", EscapeMarkdown(m.Date), EscapeMarkdown(m.Time)))
	msg.WriteString(fmt.Sprintf("🏢 *Agência:* %s", EscapeMarkdown(m.Agency)))

	return msg.String()
}

// FormatDetails formats the long form of a maneuver for /detalhes
func FormatDetails(m maneuver.Maneuver) string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("🚢 *Detalhes da manobra:* %s\n\n", EscapeMarkdown(m.Name)))
	msg.WriteString(fmt.Sprintf("🚩 *Bandeira:* %s\n", EscapeMarkdown(m.Flag)))
	msg.WriteString(fmt.Sprintf("📞 *Indicativo:* %s\n", EscapeMarkdown(m.CallSign)))
	msg.WriteString(fmt.Sprintf("⚖️ *DWT:* %s | *Calado:* %s m\n", EscapeMarkdown(m.Deadweight), EscapeMarkdown(m.Draft)))
	msg.WriteString(fmt.Sprintf("📏 *LOA:* %s m | *Boca:* %s m\n", EscapeMarkdown(m.LOA), EscapeMarkdown(m.Beam)))
	msg.WriteString(fmt.Sprintf("🆔 *IMO:* %s\n", EscapeMarkdown(m.IMO)))
	msg.WriteString(fmt.Sprintf("🏢 *Agência:* %s\n", EscapeMarkdown(m.Agency)))
	msg.WriteString(fmt.Sprintf("🛟 *Rebocadores:* %s\n", EscapeMarkdown(m.Tugs)))
	msg.WriteString(fmt.Sprintf("⚓ *Tipo:* %s\n", EscapeMarkdown(m.Type)))
	msg.WriteString(fmt.Sprintf("📍 *De:* %s\n", EscapeMarkdown(m.Origin)))
	msg.WriteString(fmt.Sprintf("🏗️ *Berço:* %s\n", EscapeMarkdown(m.Berth)))
	msg.WriteString(fmt.Sprintf("📅 *Data:* %s | 🕓 *Hora:* %s", EscapeMarkdown(m.Date), EscapeMarkdown(m.Time)))

	return msg.String()
}

// FormatStatus renders the /status reply
func FormatStatus(st store.Status) string {
	if !st.Checked {
		return NoCheckReply
	}

	var msg strings.Builder

	msg.WriteString("🤖 *DAAS PortWatch Status*\n\n")
	msg.WriteString(fmt.Sprintf("📅 Última checagem: %s\n", st.CheckedAt.Format(TimestampLayout)))
	msg.WriteString(fmt.Sprintf("🔢 Total de navios monitorados: %d\n\n", st.TotalVessels))
	msg.WriteString("*Navios previstos:*\n")

	for _, m := range st.Maneuvers {
		msg.WriteString(fmt.Sprintf("🛳️ %s | %s | Berço: %s\n",
			EscapeMarkdown(m.Name), EscapeMarkdown(m.Type), EscapeMarkdown(m.Berth)))
	}

	if st.Truncated() {
		rest := st.Current - len(st.Maneuvers)
		msg.WriteString(fmt.Sprintf("… e mais %d manobra%s\n", rest, pluralize(rest)))
	}

	return strings.TrimRight(msg.String(), "\n")
}

// FormatHelp lists the available commands
func FormatHelp() string {
	return "🤖 *DAAS PortWatch Bot*\n\n" +
		"Comandos disponíveis:\n" +
		"/help - Mostra esta lista de comandos\n" +
		"/detalhes NomeDoNavio - Mostra os detalhes de um navio específico\n" +
		"/ping - Verifica se o bot está ativo\n" +
		"/status - Mostra a última checagem, total de navios e navios previstos\n"
}

func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
