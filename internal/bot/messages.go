package bot

// WelcomeMessage answers /start.
const WelcomeMessage = `🤖 <b>Добро пожаловать в CryptoSignals Bot!</b>

Я помогу вам с анализом криптовалютных сделок и предоставлю торговые сигналы.

<b>Доступные команды:</b>
/start - Запуск бота
/help - Показать помощь
/idea - Получить торговую идею
/analyze - Анализ рынка

Вы также можете отправить мне:
📷 Скриншот графика для анализа
📝 Описание сделки для проверки

Удачных торгов! 📈`

// HelpMessage answers /help.
const HelpMessage = `<b>📋 Справка по командам:</b>

<b>/start</b> - Запустить бота заново
<b>/help</b> - Показать это сообщение
<b>/idea</b> - Получить случайную торговую идею
<b>/analyze</b> - Получить анализ текущего рынка

<b>🖼️ Анализ скриншотов:</b>
Отправьте скриншот торгового графика, и я дам рекомендации по входу/выходу.

<b>📝 Анализ текста:</b>
Опишите вашу торговую идею текстом, и я оценю её потенциал.

<b>⚠️ Предупреждение:</b>
Все сигналы носят рекомендательный характер. Торгуйте на свой страх и риск!`

const (
	ErrorGeneral         = "❌ Произошла ошибка. Попробуйте позже."
	ErrorInvalidCommand  = "❌ Неизвестная команда. Используйте /help для просмотра доступных команд."
	ErrorProcessingImage = "❌ Ошибка при обработке изображения. Попробуйте отправить другое изображение."
	ErrorInvalidFormat   = "❌ Неподдерживаемый формат файла. Поддерживаются: JPG, PNG, GIF, WebP."
	ErrorImagesOnly      = "❌ Поддерживаются только изображения. Отправьте скриншот торгового графика."
	ErrorCallback        = "❌ Произошла ошибка"

	AnalysisStarted = "✅ Начинаю анализ..."
)

// Inline keyboard under every trade idea.
const (
	CallbackNewIdea = "new_idea"
	NewIdeaButton   = "🔄 Новая идея"
)
