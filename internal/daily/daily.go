// internal/daily/daily.go
//
// Daily Challenge word selection. Every player gets the same answer for a
// given UTC date: HMAC-SHA256(salt, "YYYY-MM-DD") reduced modulo the answer
// count. Changing the salt reshuffles the schedule.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/ishirchatnani/wordle-clone/internal/game"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex maps the UTC day of date to an answer slot in [0, n).
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(DateKey(date)))
	return int(binary.BigEndian.Uint64(mac.Sum(nil)) % uint64(n))
}

// Picker is a game.SecretSource that yields the answer of the day.
type Picker struct {
	Answers []string
	Salt    string
	// Now defaults to time.Now.
	Now func() time.Time
}

var _ game.SecretSource = (*Picker)(nil)

// Today returns today's date key, word index and answer.
func (p *Picker) Today() (date string, idx int, answer string) {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	t := now()
	date = DateKey(t)
	if len(p.Answers) == 0 {
		return date, 0, ""
	}
	idx = WordIndex(t, p.Salt, len(p.Answers))
	return date, idx, p.Answers[idx]
}

// PickSecret returns today's answer.
func (p *Picker) PickSecret() string {
	_, _, answer := p.Today()
	return answer
}
