package phone

import (
	"github.com/nyaruka/phonenumbers"
)

// TelLink превращает номер в ссылку tel: по RFC 3966 для кнопки звонка.
// Для пустого или нераспознаваемого номера возвращает пустую строку.
func TelLink(phone string) string {
	if phone == "" {
		return ""
	}
	num, err := phonenumbers.Parse(phone, "RU")
	if err != nil {
		return ""
	}
	return phonenumbers.Format(num, phonenumbers.RFC3966)
}
