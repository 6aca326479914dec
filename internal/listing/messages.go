package listing

import "fmt"

// User-facing copy. The channel is Russian-speaking; the workflow is
// deliberately single-language.
const (
	MsgGreeting = "Приветствуем в барахолке Discovery!\nТут можно написать много текста, правила итд..."

	msgChoosePurpose = "Укажите цель объявления"
	msgAskPrice      = "Назовите свою цену (число) в рублях"
	msgAskContent    = "Пришлите описание объявления, приложите изображения (если есть) и укажите теги из списка ниже:"

	msgBadPrice     = "Необходимо ввести положительное число"
	msgImageLimit   = "Вы не можете добавить больше изображений"
	msgDraftUpdated = "Информация обновлена"

	msgMustSubscribe = "Сначала подпишитесь на канал барахолки"
	msgPublished     = "Объявление опубликовано!"
)

func msgWindowClosed(openHour int) string {
	return fmt.Sprintf("Публикация объявлений доступна с %d:00", openHour)
}

// Button captions for the persistent reply keyboard.
const (
	BtnNewListing = "Новое объявление"
	BtnPublish    = "Опубликовать"
	BtnRetract    = "❌ Снять с публикации"

	// MsgRetracted is shown to the invoker of the retraction control,
	// unconditionally.
	MsgRetracted = "Объявление снято с публикации"
)
