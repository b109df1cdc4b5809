package contacts

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-companion/internal/calendar"
	"github.com/tartampluch/go-companion/internal/config"
)

// Loader decodes Contact records from a vCard stream.
// Birthdays come from BDAY; the reach-out date comes from the X-CONTACT-AGAIN
// extension property.
type Loader struct {
	Cal *calendar.Calendar
}

// LoadFile reads contacts from a .vcf file.
func (l *Loader) LoadFile(ctx context.Context, path string) ([]Contact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrContactsOpen, err)
	}
	defer func() { _ = f.Close() }()

	return l.Load(ctx, f)
}

// Load decodes the stream card by card. Malformed cards are logged and
// skipped to maximize data recovery; a contact without any usable date is
// still returned (it simply never produces notifications).
func (l *Loader) Load(ctx context.Context, r io.Reader) ([]Contact, error) {
	log := slog.With(config.LogKeyComponent, config.CompContacts)

	decoder := vcard.NewDecoder(r)
	var out []Contact

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Warn(config.MsgSkippedCard, config.LogKeyError, err)
			continue
		}

		out = append(out, l.fromCard(card, log))
	}

	log.Info(config.MsgContactsLoaded, config.LogKeyCount, len(out))
	return out, nil
}

// fromCard maps one vCard onto a Contact.
func (l *Loader) fromCard(card vcard.Card, log *slog.Logger) Contact {
	// Name strategy: FN (Formatted) > N (Structured) > fallback.
	name := config.FallbackName
	if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
		name = fn.Value
	} else if n := card.Get(config.VCardN); n != nil && n.Value != "" {
		name = n.Value
	}

	c := Contact{Name: name}

	if bday := card.Get(config.VCardBDAY); bday != nil && bday.Value != "" {
		if d, yearKnown, err := l.Cal.ParseDate(bday.Value); err == nil {
			c.DateOfBirth = &d
			c.YearKnown = yearKnown
		} else {
			log.Debug(config.MsgSkippedDate,
				config.LogKeyName, name,
				config.LogKeyValue, bday.Value,
			)
		}
	}

	if again := card.Get(config.VCardContactAgain); again != nil && again.Value != "" {
		if d, _, err := l.Cal.ParseDate(again.Value); err == nil {
			c.ContactAgainDate = &d
		} else {
			log.Debug(config.MsgSkippedDate,
				config.LogKeyName, name,
				config.LogKeyValue, again.Value,
			)
		}
	}

	// Prefer the card's own UID; fall back to a deterministic hash so the same
	// card always maps to the same contact across refreshes.
	if uid := card.Get(config.VCardUID); uid != nil && uid.Value != "" {
		c.ID = uid.Value
	} else {
		c.ID = deterministicID(c)
	}

	return c
}

func deterministicID(c Contact) string {
	dob := ""
	if c.DateOfBirth != nil {
		dob = c.DateOfBirth.Format(time.RFC3339)
	}
	input := fmt.Sprintf(config.FormatHashInput, c.Name, dob, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}
