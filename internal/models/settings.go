package models

// Setting - строка таблицы bot_config.
type Setting struct {
	Key   string `json:"key" db:"cfg_key"`
	Value string `json:"value" db:"cfg_value"`
}

// Camera - камера цеха, ссылка на поток берётся из настроек.
type Camera struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	URL  string `json:"url"`
}
