package models

// UserActivity, bir kullanıcının dashboard sayaçları ve onları besleyen
// kimlik listeleri. Kullanıcı başına ayrı bir store key'i altında yaşar
// (user_activity_<id>), koleksiyonlardan bağımsızdır.
//
// Sayaçlar listelerin türevidir: TipsRead == len(ReadTips),
// FilesAccessed == len(AccessedFiles). Listeye idempotent ekleme yapılır,
// sayaç eklemeden sonra yeniden hesaplanır.
type UserActivity struct {
	TipsRead      int      `json:"tipsRead"`
	FilesAccessed int      `json:"filesAccessed"`
	DaysActive    int      `json:"daysActive"`
	ReadTips      []string `json:"readTips"`
	AccessedFiles []string `json:"accessedFiles"`
}

// HasReadTip, ipucunun daha önce okunup okunmadığını döner.
func (a *UserActivity) HasReadTip(tipID string) bool {
	for _, id := range a.ReadTips {
		if id == tipID {
			return true
		}
	}
	return false
}

// HasAccessedFile, dosyaya daha önce erişilip erişilmediğini döner.
func (a *UserActivity) HasAccessedFile(fileID string) bool {
	for _, id := range a.AccessedFiles {
		if id == fileID {
			return true
		}
	}
	return false
}
