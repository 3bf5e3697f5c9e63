// Package fuzztests holds Go fuzz harnesses for the ember front end
// (source -> lexer -> parser). They look for panics, hangs and runaway
// token streams on arbitrary input.
//
// Назначение: прогонять произвольные байты через лексер и парсер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
