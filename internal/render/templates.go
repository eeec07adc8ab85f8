package render

const tradingIdeaTemplate = `<b>💡 Торговая идея #{{.IdeaID}}</b>

<b>🪙 Пара:</b> {{.Pair}}
<b>⏰ Таймфрейм:</b> {{.Timeframe}}
<b>📊 Тип сделки:</b> {{.TradeType}}

<b>📈 Вход:</b> {{.EntryPrice}}
<b>🎯 Цели:</b>
• TP1: {{.TP1}}
• TP2: {{.TP2}}
• TP3: {{.TP3}}

<b>🛡️ Стоп-лосс:</b> {{.StopLoss}}
<b>⚖️ Риск:</b> {{.RiskLevel}}
<b>🔢 Плечо:</b> {{.Leverage}}x

<b>📝 Обоснование:</b>
{{.Reasoning}}

<b>⚠️ Риск-менеджмент:</b>
Не рискуйте более {{.RiskPercent}}% от депозита на одну сделку!

<i>Время создания: {{.Timestamp}}</i>`

const analysisResultTemplate = `<b>🔍 Анализ рынка</b>

<b>📊 Общий тренд:</b> {{.Trend}}
<b>📈 Настроение рынка:</b> {{.Sentiment}}
<b>🎯 Рекомендация:</b> {{.Recommendation}}

<b>📋 Топ криптовалют сейчас:</b>
{{.TopCryptos}}

<b>⚠️ Важные уровни:</b>
{{.KeyLevels}}

<b>💭 Комментарий:</b>
{{.Comment}}

<i>Обновлено: {{.Timestamp}}</i>`

const photoAnalysisTemplate = `<b>🖼️ Анализ графика</b>

<b>📊 Обнаруженные паттерны:</b>
{{.Patterns}}

<b>🎯 Рекомендации:</b>
{{.Recommendations}}

<b>📈 Точки входа:</b>
{{.EntryPoints}}

<b>🛡️ Управление рисками:</b>
{{.RiskManagement}}

<b>⏰ Таймфрейм:</b> {{.Timeframe}}

<i>Анализ выполнен: {{.Timestamp}}</i>`

const textAnalysisTemplate = `<b>📝 Анализ вашей идеи</b>

<b>Исходный текст:</b> <i>{{.Text}}</i>

<b>🔍 Анализ:</b>
• Общее настроение: {{.Sentiment}}
• Рекомендация: {{.Recommendation}}
{{- range .Reminders}}
• {{.}}
{{- end}}

<b>⚠️ Напоминание:</b>
Это предварительная оценка. Всегда проводите собственный анализ и управляйте рисками!

<i>Проанализировано: {{.Timestamp}}</i>`
