// Package proto implements the relay's line-oriented wire protocol:
// newline-terminated UTF-8 text, one logical message per line, plus the
// rendering of the two server message forms (system notices and relayed
// user messages).
package proto

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Server prompt and notice texts.
const (
	MsgWelcome     = "Bem-vindo. Use: /login <seu_nome>"
	MsgNameTaken   = "Nome já em uso. Tente outro."
	MsgNameInvalid = "Nome inválido."
	MsgLoginFirst  = "Faça login primeiro: /login <seu_nome>"
	MsgDialHint    = "Use /dial <usuario> para escolher destinatário."
	MsgDialUsage   = "Informe um usuário: /dial <usuario>"
	MsgPickTarget  = "Selecione um destinatário: /dial <usuario>"
	MsgQuit        = "Saindo..."
)

// System renders a server-generated notice.
func System(text string) string {
	return "[sistema] " + text
}

// UserMessage renders a relayed chat line.
func UserMessage(name, text string) string {
	return name + ": " + text
}

// LoggedInAs confirms a successful login.
func LoggedInAs(name string) string {
	return fmt.Sprintf("Logado como %s.", name)
}

// ChannelReady tells the sender its target is online.
func ChannelReady(name string) string {
	return fmt.Sprintf("Canal com %s pronto. Envie sua mensagem.", name)
}

// TargetOffline tells the sender its target will receive the message later.
func TargetOffline(name string) string {
	return fmt.Sprintf("%s está offline. Mensagens serão entregues quando entrar.", name)
}

// SentOrPending acknowledges that a chat line was routed.
func SentOrPending(name string) string {
	return fmt.Sprintf("Mensagem para %s enviada/pendente.", name)
}

// PendingHeader announces how many parked messages are about to be flushed.
func PendingHeader(n int) string {
	return fmt.Sprintf("Você tem %d mensagem(ns) pendente(s):", n)
}

// SendLine frames text as a single protocol line and writes it as one unit.
// Embedded newlines cannot occur: the caller hands over exactly one line.
func SendLine(w io.Writer, text string) error {
	if _, err := io.WriteString(w, text+"\n"); err != nil {
		return fmt.Errorf("send line: %w", err)
	}
	return nil
}

// LineReader decodes the incoming side of a stream into protocol lines.
type LineReader struct {
	r *bufio.Reader
}

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// ReadLine returns the next line with its trailing newline stripped.
// A clean peer close surfaces as io.EOF; any other fault is wrapped.
func (lr *LineReader) ReadLine() (string, error) {
	line, err := lr.r.ReadString('\n')
	if err == nil {
		return strings.TrimRight(line, "\r\n"), nil
	}
	if err == io.EOF && line != "" {
		// last line without newline
		return strings.TrimRight(line, "\r\n"), nil
	}
	if err == io.EOF {
		return "", io.EOF
	}
	return "", fmt.Errorf("read: %w", err)
}
