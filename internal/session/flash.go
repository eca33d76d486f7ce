package session

import "github.com/magabrotheeeer/rentify-web/internal/lib/sl"

// Kind — вид уведомления.
type Kind string

const (
	KindNotice Kind = "notice"
	KindError  Kind = "error"
)

// Flash — одноразовое уведомление, показываемое после редиректа.
type Flash struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// AddFlash сохраняет уведомление до следующего запроса.
func (s *Store) AddFlash(kind Kind, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flashes == nil {
		return
	}
	fs, _ := s.flashes.Get(s.r, s.flashName)
	fs.AddFlash(msg, string(kind))
	if err := fs.Save(s.r, s.w); err != nil {
		s.log.Warn("failed to save flash", sl.Err(err))
	}
}

// Notice добавляет информационное уведомление.
func (s *Store) Notice(msg string) { s.AddFlash(KindNotice, msg) }

// Fail добавляет уведомление об ошибке.
func (s *Store) Fail(msg string) { s.AddFlash(KindError, msg) }

// PopFlashes возвращает и удаляет накопленные уведомления.
func (s *Store) PopFlashes() []Flash {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flashes == nil {
		return nil
	}
	fs, err := s.flashes.Get(s.r, s.flashName)
	if err != nil {
		return nil
	}
	var out []Flash
	for _, kind := range []Kind{KindError, KindNotice} {
		for _, v := range fs.Flashes(string(kind)) {
			if msg, ok := v.(string); ok {
				out = append(out, Flash{Kind: kind, Message: msg})
			}
		}
	}
	if len(out) > 0 {
		if err := fs.Save(s.r, s.w); err != nil {
			s.log.Warn("failed to save flash", sl.Err(err))
		}
	}
	return out
}
