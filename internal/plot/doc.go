// Package plot содержит ядро конвертации изолиний в векторный чертёж:
// проекцию геодезических координат в локальную плоскую систему (Projector),
// вписывание в страницу (PageFitter), группировку по высоте со стилем
// основных горизонталей (ContourGrouper) и сериализацию в SVG (VectorWriter).
//
// Каждый этап создаёт новые контуры и не изменяет вход предыдущего этапа.
// Все этапы синхронные и работают с данными целиком в памяти.
package plot
